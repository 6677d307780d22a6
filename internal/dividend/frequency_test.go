package dividend

import (
	"testing"

	"github.com/dividenddash/backend/internal/dates"
)

// series builds a descending ex-date series of n dates spaced gapDays apart,
// ending (most recently) at the given date.
func series(t *testing.T, latest string, gapDays, n int) []dates.Date {
	t.Helper()
	d, err := dates.Parse(latest)
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %v", latest, err)
	}
	out := make([]dates.Date, n)
	for i := 0; i < n; i++ {
		out[i] = d.AddDays(-i * gapDays)
	}
	return out
}

func TestInferFrequency(t *testing.T) {
	tests := []struct {
		name    string
		gapDays int
		count   int
		want    dates.Frequency
	}{
		{"30-day gaps read as monthly", 30, 6, dates.Monthly},
		{"91-day gaps read as quarterly", 91, 5, dates.Quarterly},
		{"182-day gaps read as semi-annual", 182, 4, dates.SemiAnnual},
		{"365-day gaps read as annual", 365, 3, dates.Annual},
		{"boundary 35 days is monthly", 35, 3, dates.Monthly},
		{"boundary 36 days is quarterly", 36, 3, dates.Quarterly},
		{"two dates are enough", 91, 2, dates.Quarterly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferFrequency(series(t, "2024-03-25", tt.gapDays, tt.count))
			if got != tt.want {
				t.Errorf("InferFrequency = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("single date is unknown", func(t *testing.T) {
		if got := InferFrequency(series(t, "2024-03-25", 91, 1)); got != dates.Unknown {
			t.Errorf("InferFrequency = %s, want Unknown", got)
		}
	})

	t.Run("empty series is unknown", func(t *testing.T) {
		if got := InferFrequency(nil); got != dates.Unknown {
			t.Errorf("InferFrequency = %s, want Unknown", got)
		}
	})

	t.Run("only the four most recent gaps count", func(t *testing.T) {
		// Four recent monthly gaps followed by old annual history: the old
		// gaps must not drag the average out of the monthly bucket.
		recent := series(t, "2024-03-25", 30, 5)
		old := series(t, "2022-11-25", 365, 3)
		if got := InferFrequency(append(recent, old...)); got != dates.Monthly {
			t.Errorf("InferFrequency = %s, want Monthly", got)
		}
	})
}
