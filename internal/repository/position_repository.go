package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
// The table holds exactly one row per symbol; that uniqueness is the ledger's
// central invariant and is enforced by the primary key.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{db: r.db, tx: tx}
}

func (r *PositionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPositions retrieves all positions ordered by symbol.
// Returns an empty slice if the portfolio is empty.
func (r *PositionRepository) GetPositions() ([]model.Position, error) {
	query := `
		SELECT symbol, name, sector, shares, avg_cost, cost_basis, purchase_date
		FROM position
		ORDER BY symbol ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

// GetPosition retrieves the position for one symbol.
// Returns apperrors.ErrPositionNotFound when no position exists.
func (r *PositionRepository) GetPosition(symbol string) (model.Position, error) {
	query := `
		SELECT symbol, name, sector, shares, avg_cost, cost_basis, purchase_date
		FROM position
		WHERE symbol = ?
	`

	row := r.getQuerier().QueryRow(query, symbol)
	pos, err := scanPositionRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	return pos, err
}

// UpsertPosition inserts the position or replaces the existing row for its
// symbol. The caller computes the merged values; the repository only persists
// them.
func (r *PositionRepository) UpsertPosition(pos model.Position) error {
	query := `
		INSERT INTO position (symbol, name, sector, shares, avg_cost, cost_basis, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET
			name = excluded.name,
			sector = excluded.sector,
			shares = excluded.shares,
			avg_cost = excluded.avg_cost,
			cost_basis = excluded.cost_basis,
			purchase_date = excluded.purchase_date
	`

	_, err := r.getQuerier().Exec(query,
		pos.Symbol, pos.Name, pos.Sector,
		pos.Shares, pos.AvgCost, pos.CostBasis, pos.PurchaseDate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position %s: %w", pos.Symbol, err)
	}
	return nil
}

// DeletePosition removes the position for one symbol.
// Returns apperrors.ErrPositionNotFound when no row was deleted.
func (r *PositionRepository) DeletePosition(symbol string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM position WHERE symbol = ?`, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete position %s: %w", symbol, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}

// DeleteAll removes every position. Transaction history is not touched here;
// clearing it is a separate, explicit operation.
func (r *PositionRepository) DeleteAll() error {
	if _, err := r.getQuerier().Exec(`DELETE FROM position`); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(rows *sql.Rows) (model.Position, error) {
	return scanPositionRow(rows)
}

func scanPositionRow(row rowScanner) (model.Position, error) {
	var pos model.Position
	var name, sector sql.NullString
	var purchaseDate string

	if err := row.Scan(&pos.Symbol, &name, &sector, &pos.Shares, &pos.AvgCost, &pos.CostBasis, &purchaseDate); err != nil {
		return model.Position{}, err
	}

	pos.Name = name.String
	pos.Sector = sector.String

	parsed, err := dates.Parse(purchaseDate)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid purchase_date for %s: %w", pos.Symbol, err)
	}
	pos.PurchaseDate = parsed
	return pos, nil
}
