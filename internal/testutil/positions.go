package testutil

import (
	"database/sql"
	"testing"

	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/repository"
)

// CreatePosition inserts a position directly, bypassing the purchase flow.
func CreatePosition(t *testing.T, db *sql.DB, symbol string, shares, avgCost float64, purchaseDate string) model.Position {
	t.Helper()

	pos := model.Position{
		Symbol:       symbol,
		Name:         symbol,
		Shares:       shares,
		AvgCost:      avgCost,
		CostBasis:    shares * avgCost,
		PurchaseDate: mustDate(purchaseDate),
	}
	if err := repository.NewPositionRepository(db).UpsertPosition(pos); err != nil {
		t.Fatalf("failed to create test position %s: %v", symbol, err)
	}
	return pos
}
