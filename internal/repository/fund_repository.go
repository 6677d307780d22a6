package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
)

// FundRepository provides data access methods for the fund catalog table.
// Catalog rows are snapshots: a refresh replaces a row wholesale rather than
// patching individual columns.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{db: r.db, tx: tx}
}

func (r *FundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetFunds retrieves the whole fund catalog ordered by symbol.
func (r *FundRepository) GetFunds() ([]model.Fund, error) {
	query := `
		SELECT symbol, name, price, dividend_per_share, annual_dividend,
		       ex_dividend_date, frequency, sector, updated_at
		FROM fund
		ORDER BY symbol ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}
	for rows.Next() {
		fund, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		funds = append(funds, fund)
	}
	return funds, rows.Err()
}

// GetFund retrieves one fund by symbol.
// Returns apperrors.ErrFundNotFound when the symbol is not in the catalog.
func (r *FundRepository) GetFund(symbol string) (model.Fund, error) {
	query := `
		SELECT symbol, name, price, dividend_per_share, annual_dividend,
		       ex_dividend_date, frequency, sector, updated_at
		FROM fund
		WHERE symbol = ?
	`

	fund, err := scanFund(r.getQuerier().QueryRow(query, symbol))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	return fund, err
}

// Symbols returns every catalog symbol, ordered. Refresh batches iterate this.
func (r *FundRepository) Symbols() ([]string, error) {
	rows, err := r.getQuerier().Query(`SELECT symbol FROM fund ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund symbols: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// UpsertFund replaces the catalog row for the fund's symbol.
func (r *FundRepository) UpsertFund(fund model.Fund) error {
	query := `
		INSERT INTO fund (symbol, name, price, dividend_per_share, annual_dividend,
		                  ex_dividend_date, frequency, sector, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			dividend_per_share = excluded.dividend_per_share,
			annual_dividend = excluded.annual_dividend,
			ex_dividend_date = excluded.ex_dividend_date,
			frequency = excluded.frequency,
			sector = excluded.sector,
			updated_at = excluded.updated_at
	`

	var exDate any
	if !fund.ExDividendDate.IsZero() {
		exDate = fund.ExDividendDate.String()
	}

	var updatedAt any
	if !fund.UpdatedAt.IsZero() {
		updatedAt = fund.UpdatedAt.UTC().Format(time.RFC3339)
	}

	_, err := r.getQuerier().Exec(query,
		fund.Symbol, fund.Name, fund.Price,
		fund.DividendPerShare, fund.AnnualDividend,
		exDate, string(fund.Frequency), fund.Sector, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fund %s: %w", fund.Symbol, err)
	}
	return nil
}

func scanFund(row rowScanner) (model.Fund, error) {
	var fund model.Fund
	var sector sql.NullString
	var exDate, updatedAt sql.NullString
	var frequency string

	if err := row.Scan(&fund.Symbol, &fund.Name, &fund.Price,
		&fund.DividendPerShare, &fund.AnnualDividend,
		&exDate, &frequency, &sector, &updatedAt); err != nil {
		return model.Fund{}, err
	}

	fund.Sector = sector.String
	fund.Frequency = dates.Frequency(frequency)

	if exDate.Valid && exDate.String != "" {
		parsed, err := dates.Parse(exDate.String)
		if err != nil {
			return model.Fund{}, fmt.Errorf("invalid ex_dividend_date for %s: %w", fund.Symbol, err)
		}
		fund.ExDividendDate = parsed
	}

	if updatedAt.Valid && updatedAt.String != "" {
		ts, err := time.Parse(time.RFC3339, updatedAt.String)
		if err != nil {
			return model.Fund{}, fmt.Errorf("invalid updated_at for %s: %w", fund.Symbol, err)
		}
		fund.UpdatedAt = ts
	}

	return fund, nil
}
