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

// TransactionRepository provides data access methods for the txn table.
// The table is an append-only audit trail: rows are inserted, listed, and
// (only through the explicit full-wipe operation) deleted wholesale, but
// never updated.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a copy of the repository that runs inside the given transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{db: r.db, tx: tx}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertTransaction appends one transaction record.
func (r *TransactionRepository) InsertTransaction(txn model.Transaction) error {
	query := `
		INSERT INTO txn (id, symbol, name, type, shares, price, total, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().Exec(query,
		txn.ID, txn.Symbol, txn.Name, txn.Type,
		txn.Shares, txn.Price, txn.Total,
		txn.Date.String(), txn.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransactions retrieves all transactions, newest first. The ordering is a
// display contract: history is always rendered most-recent-first without
// re-sorting downstream.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	query := `
		SELECT id, symbol, name, type, shares, price, total, date, created_at
		FROM txn
		ORDER BY created_at DESC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query txn table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	query := `
		SELECT id, symbol, name, type, shares, price, total, date, created_at
		FROM txn
		WHERE id = ?
	`

	txn, err := scanTransaction(r.getQuerier().QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return txn, err
}

// DeleteAll wipes the transaction history. Only the explicit clear-everything
// operation calls this; routine position removal leaves history intact.
func (r *TransactionRepository) DeleteAll() error {
	if _, err := r.getQuerier().Exec(`DELETE FROM txn`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var txn model.Transaction
	var name sql.NullString
	var dateStr, createdAt string

	if err := row.Scan(&txn.ID, &txn.Symbol, &name, &txn.Type,
		&txn.Shares, &txn.Price, &txn.Total, &dateStr, &createdAt); err != nil {
		return model.Transaction{}, err
	}

	txn.Name = name.String

	parsed, err := dates.Parse(dateStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid date for transaction %s: %w", txn.ID, err)
	}
	txn.Date = parsed

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid created_at for transaction %s: %w", txn.ID, err)
	}
	txn.CreatedAt = ts

	return txn, nil
}
