package dividend

import (
	"math"
	"testing"
	"time"

	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
)

func date(t *testing.T, s string) dates.Date {
	t.Helper()
	d, err := dates.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %v", s, err)
	}
	return d
}

func schd(t *testing.T) model.Fund {
	t.Helper()
	return model.Fund{
		Symbol:           "SCHD",
		Name:             "Schwab US Dividend Equity ETF",
		Price:            78.43,
		DividendPerShare: 0.74,
		ExDividendDate:   date(t, "2024-03-25"),
		Frequency:        dates.Quarterly,
		Sector:           "Dividend",
	}
}

func TestProject(t *testing.T) {
	today := date(t, "2024-04-01")

	t.Run("projects a quarterly fund within the horizon", func(t *testing.T) {
		positions := []model.Position{{Symbol: "SCHD", Shares: 150, AvgCost: 75.20}}

		events := Project(positions, []model.Fund{schd(t)}, today, 90)

		if len(events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(events))
		}
		ev := events[0]
		if ev.ExDate.String() != "2024-06-25" {
			t.Errorf("ExDate = %s, want 2024-06-25", ev.ExDate)
		}
		if ev.PayDate.String() != "2024-06-27" {
			t.Errorf("PayDate = %s, want 2024-06-27", ev.PayDate)
		}
		if math.Abs(ev.EstimatedAmount-111.00) > 1e-9 {
			t.Errorf("EstimatedAmount = %v, want 111.00", ev.EstimatedAmount)
		}
		if ev.DaysUntilEx != 85 {
			t.Errorf("DaysUntilEx = %d, want 85", ev.DaysUntilEx)
		}
		if ev.Priority != model.UrgencyLow {
			t.Errorf("Priority = %s, want low", ev.Priority)
		}
		if ev.Shares != 150 || ev.DividendPerShare != 0.74 {
			t.Errorf("event carries shares=%v dps=%v", ev.Shares, ev.DividendPerShare)
		}
	})

	t.Run("pay date always falls after the ex date", func(t *testing.T) {
		positions := []model.Position{{Symbol: "SCHD", Shares: 10}}
		events := Project(positions, []model.Fund{schd(t)}, today, 90)
		if len(events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(events))
		}
		if !events[0].PayDate.After(events[0].ExDate) {
			t.Errorf("PayDate %s not after ExDate %s", events[0].PayDate, events[0].ExDate)
		}
	})

	t.Run("skips positions with no matching fund", func(t *testing.T) {
		positions := []model.Position{
			{Symbol: "SCHD", Shares: 150},
			{Symbol: "DELISTED", Shares: 50},
		}

		events := Project(positions, []model.Fund{schd(t)}, today, 90)

		if len(events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(events))
		}
		if events[0].Symbol != "SCHD" {
			t.Errorf("Unexpected symbol %s", events[0].Symbol)
		}
	})

	t.Run("skips funds without dividend data", func(t *testing.T) {
		fund := schd(t)
		fund.DividendPerShare = 0

		events := Project([]model.Position{{Symbol: "SCHD", Shares: 150}}, []model.Fund{fund}, today, 90)

		if len(events) != 0 {
			t.Errorf("Expected no events, got %d", len(events))
		}
	})

	t.Run("excludes events beyond the horizon", func(t *testing.T) {
		events := Project([]model.Position{{Symbol: "SCHD", Shares: 150}}, []model.Fund{schd(t)}, today, 30)
		if len(events) != 0 {
			t.Errorf("Expected no events within 30 days, got %d", len(events))
		}
	})

	t.Run("excludes events already past", func(t *testing.T) {
		// By 2024-07-01 the projected 2024-06-25 ex-date has passed.
		events := Project([]model.Position{{Symbol: "SCHD", Shares: 150}}, []model.Fund{schd(t)}, date(t, "2024-07-01"), 90)
		if len(events) != 0 {
			t.Errorf("Expected no events, got %d", len(events))
		}
	})

	t.Run("sorts ascending by ex-date", func(t *testing.T) {
		funds := []model.Fund{
			schd(t),
			{Symbol: "JEPI", Name: "JPMorgan Equity Premium Income ETF", Price: 56.78,
				DividendPerShare: 0.48, ExDividendDate: date(t, "2024-03-28"), Frequency: dates.Monthly, Sector: "Income"},
			{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Price: 445.67,
				DividendPerShare: 1.58, ExDividendDate: date(t, "2024-03-15"), Frequency: dates.Quarterly, Sector: "Broad Market"},
		}
		positions := []model.Position{
			{Symbol: "SCHD", Shares: 150},
			{Symbol: "JEPI", Shares: 200},
			{Symbol: "SPY", Shares: 25},
		}

		events := Project(positions, funds, today, 90)

		if len(events) != 3 {
			t.Fatalf("Expected 3 events, got %d", len(events))
		}
		for i := 1; i < len(events); i++ {
			if events[i].ExDate.Before(events[i-1].ExDate) {
				t.Errorf("Events out of order: %s before %s", events[i].ExDate, events[i-1].ExDate)
			}
		}
		// JEPI is monthly: 2024-03-28 + 1 month = 2024-04-28, the earliest.
		if events[0].Symbol != "JEPI" {
			t.Errorf("First event = %s, want JEPI", events[0].Symbol)
		}
	})

	t.Run("never returns events outside the window", func(t *testing.T) {
		funds := []model.Fund{schd(t)}
		positions := []model.Position{{Symbol: "SCHD", Shares: 150}}

		for offset := 0; offset < 200; offset += 10 {
			day := today.AddDays(offset)
			for _, horizon := range []int{7, 30, 90, 180} {
				for _, ev := range Project(positions, funds, day, horizon) {
					if ev.ExDate.Before(day) {
						t.Fatalf("ExDate %s before today %s", ev.ExDate, day)
					}
					if ev.ExDate.After(day.AddDays(horizon)) {
						t.Fatalf("ExDate %s after horizon %s", ev.ExDate, day.AddDays(horizon))
					}
				}
			}
		}
	})

	t.Run("urgency tiers follow the day thresholds", func(t *testing.T) {
		tests := []struct {
			today string
			want  string
		}{
			{"2024-06-20", model.UrgencyHigh},   // 5 days out
			{"2024-06-01", model.UrgencyMedium}, // 24 days out
			{"2024-04-01", model.UrgencyLow},    // 85 days out
		}
		for _, tt := range tests {
			events := Project([]model.Position{{Symbol: "SCHD", Shares: 1}}, []model.Fund{schd(t)}, date(t, tt.today), 90)
			if len(events) != 1 {
				t.Fatalf("today=%s: expected 1 event, got %d", tt.today, len(events))
			}
			if events[0].Priority != tt.want {
				t.Errorf("today=%s: priority = %s, want %s", tt.today, events[0].Priority, tt.want)
			}
		}
	})

	t.Run("zero horizon uses the default", func(t *testing.T) {
		events := Project([]model.Position{{Symbol: "SCHD", Shares: 150}}, []model.Fund{schd(t)}, today, 0)
		if len(events) != 1 {
			t.Errorf("Expected 1 event with default horizon, got %d", len(events))
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty projection", func(t *testing.T) {
		s := Summarize(nil)
		if s.TotalUpcoming != 0 || s.TotalEstimatedIncome != 0 {
			t.Errorf("Summarize(nil) = %+v, want zeros", s)
		}
	})

	t.Run("buckets by days until ex-date", func(t *testing.T) {
		events := []model.DividendEvent{
			{EstimatedAmount: 10, DaysUntilEx: 3},
			{EstimatedAmount: 20, DaysUntilEx: 15},
			{EstimatedAmount: 40, DaysUntilEx: 60},
		}

		s := Summarize(events)

		if s.TotalUpcoming != 3 {
			t.Errorf("TotalUpcoming = %d, want 3", s.TotalUpcoming)
		}
		if s.TotalEstimatedIncome != 70 {
			t.Errorf("TotalEstimatedIncome = %v, want 70", s.TotalEstimatedIncome)
		}
		if s.Next7Days != 1 || s.Next7DaysIncome != 10 {
			t.Errorf("Next7Days = %d/%v, want 1/10", s.Next7Days, s.Next7DaysIncome)
		}
		if s.Next30Days != 2 || s.Next30DaysIncome != 30 {
			t.Errorf("Next30Days = %d/%v, want 2/30", s.Next30Days, s.Next30DaysIncome)
		}
	})
}

func TestFilterByPeriod(t *testing.T) {
	today := date(t, "2024-04-01")
	events := []model.DividendEvent{
		{Symbol: "A", ExDate: date(t, "2024-04-05")},
		{Symbol: "B", ExDate: date(t, "2024-04-25")},
		{Symbol: "C", ExDate: date(t, "2024-06-20")},
	}

	tests := []struct {
		period string
		want   int
	}{
		{PeriodWeek, 1},
		{PeriodMonth, 2},
		{PeriodQuarter, 3},
		{PeriodAll, 3},
		{"bogus", 3},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			if got := FilterByPeriod(events, today, tt.period); len(got) != tt.want {
				t.Errorf("FilterByPeriod(%s) returned %d events, want %d", tt.period, len(got), tt.want)
			}
		})
	}
}

func TestCalendar(t *testing.T) {
	events := []model.DividendEvent{
		{Symbol: "SCHD", ExDate: date(t, "2024-06-25"), PayDate: date(t, "2024-06-27")},
		{Symbol: "JEPI", ExDate: date(t, "2024-05-28"), PayDate: date(t, "2024-05-30")},
	}

	cal := Calendar(events, 2024, int(time.June))

	if len(cal) != 2 {
		t.Fatalf("Expected 2 days with entries, got %d", len(cal))
	}
	if len(cal[25].Ex) != 1 || cal[25].Ex[0].Symbol != "SCHD" {
		t.Errorf("Day 25 ex bucket = %+v", cal[25])
	}
	if len(cal[27].Pay) != 1 || cal[27].Pay[0].Symbol != "SCHD" {
		t.Errorf("Day 27 pay bucket = %+v", cal[27])
	}
	if _, ok := cal[28]; ok {
		t.Error("May event leaked into June calendar")
	}
}
