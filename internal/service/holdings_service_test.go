package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dividenddash/backend/internal/api/request"
	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/testutil"
	"github.com/dividenddash/backend/internal/validation"
)

func buyRequest(symbol string, shares, price float64, date string) request.AddHoldingRequest {
	return request.AddHoldingRequest{
		Symbol:        symbol,
		Shares:        shares,
		PricePerShare: price,
		Date:          date,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestHoldingsService_AddPurchase tests purchase recording and merging.
//
// WHY: The weighted-average merge is where the ledger and positions can drift
// apart. This verifies the single-position invariant, the merge math, and
// that every purchase leaves exactly one audit record.
func TestHoldingsService_AddPurchase(t *testing.T) {
	t.Run("first purchase creates the position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		pos, err := svc.AddPurchase(context.Background(), buyRequest("SPY", 25, 425.30, "2024-01-15"))
		if err != nil {
			t.Fatalf("AddPurchase() returned unexpected error: %v", err)
		}

		if pos.Symbol != "SPY" {
			t.Errorf("Expected symbol SPY, got %s", pos.Symbol)
		}
		if pos.Shares != 25 {
			t.Errorf("Expected 25 shares, got %v", pos.Shares)
		}
		if !almostEqual(pos.AvgCost, 425.30) {
			t.Errorf("Expected avg cost 425.30, got %v", pos.AvgCost)
		}
		if !almostEqual(pos.CostBasis, 25*425.30) {
			t.Errorf("Expected cost basis %v, got %v", 25*425.30, pos.CostBasis)
		}
	})

	t.Run("repeat purchase merges with weighted-average cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		if _, err := svc.AddPurchase(context.Background(), buyRequest("SPY", 25, 425.30, "2024-01-15")); err != nil {
			t.Fatalf("first AddPurchase() returned unexpected error: %v", err)
		}
		pos, err := svc.AddPurchase(context.Background(), buyRequest("SPY", 25, 445.67, "2024-03-01"))
		if err != nil {
			t.Fatalf("second AddPurchase() returned unexpected error: %v", err)
		}

		if pos.Shares != 50 {
			t.Errorf("Expected 50 shares, got %v", pos.Shares)
		}
		if !almostEqual(pos.AvgCost, 435.485) {
			t.Errorf("Expected avg cost 435.485, got %v", pos.AvgCost)
		}
		if !almostEqual(pos.CostBasis, 21774.25) {
			t.Errorf("Expected cost basis 21774.25, got %v", pos.CostBasis)
		}
		if pos.PurchaseDate.String() != "2024-03-01" {
			t.Errorf("Expected purchase date 2024-03-01, got %s", pos.PurchaseDate)
		}

		// Merging must never collapse the audit trail.
		positions, err := svc.Positions()
		if err != nil {
			t.Fatalf("Positions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 {
			t.Errorf("Expected 1 position after merge, got %d", len(positions))
		}
	})

	t.Run("each purchase records exactly one transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		for _, date := range []string{"2024-01-15", "2024-02-15", "2024-03-15"} {
			if _, err := svc.AddPurchase(context.Background(), buyRequest("SCHD", 10, 78.43, date)); err != nil {
				t.Fatalf("AddPurchase() returned unexpected error: %v", err)
			}
		}

		txns, err := svc.Transactions()
		if err != nil {
			t.Fatalf("Transactions() returned unexpected error: %v", err)
		}
		if len(txns) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(txns))
		}
		for _, txn := range txns {
			if txn.Type != model.TransactionBuy {
				t.Errorf("Expected type %q, got %q", model.TransactionBuy, txn.Type)
			}
			if txn.ID == "" {
				t.Error("Expected transaction to have an ID")
			}
			if !almostEqual(txn.Total, 10*78.43) {
				t.Errorf("Expected total %v, got %v", 10*78.43, txn.Total)
			}
		}
		// Newest first.
		if txns[0].Date.String() != "2024-03-15" {
			t.Errorf("Expected newest transaction first, got %s", txns[0].Date)
		}
	})

	t.Run("symbol is normalized to upper case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		pos, err := svc.AddPurchase(context.Background(), buyRequest("schd", 10, 78.43, "2024-01-15"))
		if err != nil {
			t.Fatalf("AddPurchase() returned unexpected error: %v", err)
		}
		if pos.Symbol != "SCHD" {
			t.Errorf("Expected symbol SCHD, got %s", pos.Symbol)
		}
	})

	t.Run("name and sector fall back to the fund catalog", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)
		testutil.SCHD(t, db)

		pos, err := svc.AddPurchase(context.Background(), buyRequest("SCHD", 10, 78.43, "2024-01-15"))
		if err != nil {
			t.Fatalf("AddPurchase() returned unexpected error: %v", err)
		}
		if pos.Name != "Schwab US Dividend Equity ETF" {
			t.Errorf("Expected catalog name, got %q", pos.Name)
		}
	})

	t.Run("rejects invalid input with field errors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		tests := []struct {
			name  string
			req   request.AddHoldingRequest
			field string
		}{
			{"missing symbol", buyRequest("", 10, 78.43, "2024-01-15"), "symbol"},
			{"zero shares", buyRequest("SCHD", 0, 78.43, "2024-01-15"), "shares"},
			{"negative shares", buyRequest("SCHD", -5, 78.43, "2024-01-15"), "shares"},
			{"zero price", buyRequest("SCHD", 10, 0, "2024-01-15"), "pricePerShare"},
			{"bad date", buyRequest("SCHD", 10, 78.43, "15-01-2024"), "date"},
			{"missing date", buyRequest("SCHD", 10, 78.43, ""), "date"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.AddPurchase(context.Background(), tt.req)
				var vErr *validation.Error
				if !errors.As(err, &vErr) {
					t.Fatalf("Expected validation error, got %v", err)
				}
				if _, ok := vErr.Fields[tt.field]; !ok {
					t.Errorf("Expected error on field %q, got %v", tt.field, vErr.Fields)
				}
			})
		}

		// Nothing may be written on rejection.
		txns, err := svc.Transactions()
		if err != nil {
			t.Fatalf("Transactions() returned unexpected error: %v", err)
		}
		if len(txns) != 0 {
			t.Errorf("Expected no transactions after rejected input, got %d", len(txns))
		}
	})
}

// TestHoldingsService_Remove tests the three removal operations.
//
// WHY: Removing a position, clearing positions, and clearing everything have
// deliberately different effects on the transaction ledger.
func TestHoldingsService_Remove(t *testing.T) {
	t.Run("RemovePosition keeps the transaction history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		if _, err := svc.AddPurchase(context.Background(), buyRequest("SCHD", 10, 78.43, "2024-01-15")); err != nil {
			t.Fatalf("AddPurchase() returned unexpected error: %v", err)
		}

		if err := svc.RemovePosition("SCHD"); err != nil {
			t.Fatalf("RemovePosition() returned unexpected error: %v", err)
		}

		positions, _ := svc.Positions()
		if len(positions) != 0 {
			t.Errorf("Expected no positions, got %d", len(positions))
		}
		txns, _ := svc.Transactions()
		if len(txns) != 1 {
			t.Errorf("Expected transaction history to survive, got %d records", len(txns))
		}
	})

	t.Run("RemovePosition on unknown symbol returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		err := svc.RemovePosition("NOPE")
		if !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected ErrPositionNotFound, got %v", err)
		}
	})

	t.Run("ClearPositions keeps transactions, ClearAll does not", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		if _, err := svc.AddPurchase(context.Background(), buyRequest("SCHD", 10, 78.43, "2024-01-15")); err != nil {
			t.Fatalf("AddPurchase() returned unexpected error: %v", err)
		}
		if _, err := svc.AddPurchase(context.Background(), buyRequest("JEPI", 20, 56.78, "2024-02-15")); err != nil {
			t.Fatalf("AddPurchase() returned unexpected error: %v", err)
		}

		if err := svc.ClearPositions(); err != nil {
			t.Fatalf("ClearPositions() returned unexpected error: %v", err)
		}
		positions, _ := svc.Positions()
		if len(positions) != 0 {
			t.Errorf("Expected no positions after ClearPositions, got %d", len(positions))
		}
		txns, _ := svc.Transactions()
		if len(txns) != 2 {
			t.Errorf("Expected 2 transactions after ClearPositions, got %d", len(txns))
		}

		if err := svc.ClearAll(); err != nil {
			t.Fatalf("ClearAll() returned unexpected error: %v", err)
		}
		txns, _ = svc.Transactions()
		if len(txns) != 0 {
			t.Errorf("Expected no transactions after ClearAll, got %d", len(txns))
		}
	})
}
