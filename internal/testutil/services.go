package testutil

import (
	"database/sql"
	"testing"

	"github.com/dividenddash/backend/internal/repository"
	"github.com/dividenddash/backend/internal/service"
)

// NewTestHoldingsService creates a HoldingsService wired against the given test database.
func NewTestHoldingsService(t *testing.T, db *sql.DB) *service.HoldingsService {
	t.Helper()
	return service.NewHoldingsService(
		db,
		repository.NewPositionRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewFundRepository(db),
	)
}

// NewTestDividendService creates a DividendService wired against the given test database.
func NewTestDividendService(t *testing.T, db *sql.DB) *service.DividendService {
	t.Helper()
	return service.NewDividendService(
		repository.NewPositionRepository(db),
		repository.NewFundRepository(db),
	)
}

// NewTestValuationService creates a ValuationService wired against the given test database.
func NewTestValuationService(t *testing.T, db *sql.DB) *service.ValuationService {
	t.Helper()
	return service.NewValuationService(
		repository.NewPositionRepository(db),
		repository.NewFundRepository(db),
	)
}
