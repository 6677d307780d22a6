package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/testutil"
)

func TestDividendHandler_Upcoming(t *testing.T) {
	setupHandler := func(t *testing.T) (*DividendHandler, func()) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		today, err := dates.Parse("2024-04-01")
		if err != nil {
			t.Fatal(err)
		}
		svc := testutil.NewTestDividendService(t, db).WithToday(func() dates.Date { return today })

		testutil.SCHD(t, db)
		seed := func() {
			testutil.CreatePosition(t, db, "SCHD", 150, 75.00, "2024-01-15")
		}
		return NewDividendHandler(svc), seed
	}

	t.Run("returns empty array without positions", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/dividend/upcoming", nil)
		w := httptest.NewRecorder()

		handler.Upcoming(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.DividendEvent
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d events", len(response))
		}
	})

	t.Run("projects held positions", func(t *testing.T) {
		handler, seed := setupHandler(t)
		seed()

		req := httptest.NewRequest(http.MethodGet, "/api/dividend/upcoming?days=90", nil)
		w := httptest.NewRecorder()

		handler.Upcoming(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.DividendEvent
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(response))
		}
		if response[0].ExDate.String() != "2024-06-25" {
			t.Errorf("Expected ex-date 2024-06-25, got %s", response[0].ExDate)
		}
	})

	t.Run("rejects a non-numeric days parameter", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/dividend/upcoming?days=soon", nil)
		w := httptest.NewRecorder()

		handler.Upcoming(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestDividendHandler_Calendar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	today, err := dates.Parse("2024-04-01")
	if err != nil {
		t.Fatal(err)
	}
	svc := testutil.NewTestDividendService(t, db).WithToday(func() dates.Date { return today })
	handler := NewDividendHandler(svc)

	testutil.SCHD(t, db)
	testutil.CreatePosition(t, db, "SCHD", 150, 75.00, "2024-01-15")

	t.Run("returns the requested month keyed by day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dividend/calendar?year=2024&month=6", nil)
		w := httptest.NewRecorder()

		handler.Calendar(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]model.CalendarDay
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		day, ok := response["25"]
		if !ok {
			t.Fatalf("Expected an entry on day 25, got %v", response)
		}
		if len(day.Ex) != 1 || day.Ex[0].Symbol != "SCHD" {
			t.Errorf("Expected SCHD ex-date on day 25, got %v", day.Ex)
		}
	})

	t.Run("rejects an out-of-range month", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dividend/calendar?year=2024&month=13", nil)
		w := httptest.NewRecorder()

		handler.Calendar(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
