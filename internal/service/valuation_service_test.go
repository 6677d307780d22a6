package service_test

import (
	"testing"

	"github.com/dividenddash/backend/internal/testutil"
)

// TestValuationService_Summary tests the portfolio summary through the
// service layer.
//
// WHY: The valuation math is covered in its own package; this verifies the
// service joins stored positions against the stored catalog, including the
// fallback for positions with no quote.
func TestValuationService_Summary(t *testing.T) {
	t.Run("values positions at catalog prices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		testutil.SCHD(t, db)
		testutil.CreatePosition(t, db, "SCHD", 150, 75.00, "2024-01-15")

		summary, err := svc.Summary()
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		if len(summary.Positions) != 1 {
			t.Fatalf("Expected 1 valuation, got %d", len(summary.Positions))
		}
		v := summary.Positions[0]
		if v.CurrentPrice != 78.43 {
			t.Errorf("Expected current price 78.43, got %v", v.CurrentPrice)
		}
		if !almostEqual(v.CurrentValue, 150*78.43) {
			t.Errorf("Expected current value %v, got %v", 150*78.43, v.CurrentValue)
		}
		if !almostEqual(v.GainLoss, 150*(78.43-75.00)) {
			t.Errorf("Expected gain %v, got %v", 150*(78.43-75.00), v.GainLoss)
		}
		if summary.Totals.Positions != 1 {
			t.Errorf("Expected totals over 1 position, got %d", summary.Totals.Positions)
		}
		if !almostEqual(summary.Totals.TotalValue, 150*78.43) {
			t.Errorf("Expected total value %v, got %v", 150*78.43, summary.Totals.TotalValue)
		}
	})

	t.Run("position without a quote is valued at its own cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		testutil.CreatePosition(t, db, "MISSING", 10, 100.00, "2024-01-15")

		summary, err := svc.Summary()
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}

		v := summary.Positions[0]
		if v.CurrentPrice != 100.00 {
			t.Errorf("Expected fallback price 100.00, got %v", v.CurrentPrice)
		}
		if v.GainLoss != 0 {
			t.Errorf("Expected flat valuation, got gain %v", v.GainLoss)
		}
	})

	t.Run("empty portfolio yields zero totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db)

		summary, err := svc.Summary()
		if err != nil {
			t.Fatalf("Summary() returned unexpected error: %v", err)
		}
		if len(summary.Positions) != 0 {
			t.Errorf("Expected no valuations, got %d", len(summary.Positions))
		}
		if summary.Totals.TotalValue != 0 || summary.Totals.GainLossPercent != 0 {
			t.Errorf("Expected zero totals, got %+v", summary.Totals)
		}
	})
}
