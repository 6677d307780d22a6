package model

import (
	"time"

	"github.com/dividenddash/backend/internal/dates"
)

// Fund represents a snapshot of a tradable instrument from the fund catalog.
// Snapshots are immutable once fetched and replaced wholesale on refresh.
type Fund struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Price            float64         `json:"price"`
	DividendPerShare float64         `json:"dividendPerShare"` // most recent per-payment amount
	AnnualDividend   float64         `json:"annualDividend"`   // estimated per-share amount over a year
	ExDividendDate   dates.Date      `json:"exDividendDate"`   // last known ex-dividend date
	Frequency        dates.Frequency `json:"frequency"`
	Sector           string          `json:"sector"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
}

// HasDividendData reports whether the fund carries enough dividend
// information to project future payments. Funds without it are silently
// skipped by the projector; missing data is expected, not an error.
func (f Fund) HasDividendData() bool {
	return f.DividendPerShare > 0 && !f.ExDividendDate.IsZero()
}
