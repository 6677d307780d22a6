package model

import "github.com/dividenddash/backend/internal/dates"

// Urgency buckets a projected dividend event by how soon its ex-date falls.
const (
	UrgencyHigh   = "high"   // ex-date within 7 days
	UrgencyMedium = "medium" // ex-date within 30 days
	UrgencyLow    = "low"
)

// DividendEvent is a projected future dividend payment for a held position.
// Events are value objects: recomputed on every query, never persisted.
// The ex-date is always between today and the projection horizon, and the
// pay-date always falls after the ex-date.
type DividendEvent struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	ExDate           dates.Date      `json:"exDate"`
	PayDate          dates.Date      `json:"payDate"`
	DividendPerShare float64         `json:"dividendPerShare"`
	Shares           float64         `json:"shares"`
	EstimatedAmount  float64         `json:"estimatedAmount"`
	Frequency        dates.Frequency `json:"frequency"`
	DaysUntilEx      int             `json:"daysUntilEx"`
	Priority         string          `json:"priority"`
}

// DividendSummary aggregates projected events for dashboard display.
type DividendSummary struct {
	TotalUpcoming        int     `json:"totalUpcoming"`
	TotalEstimatedIncome float64 `json:"totalEstimatedIncome"`
	Next7Days            int     `json:"next7Days"`
	Next7DaysIncome      float64 `json:"next7DaysIncome"`
	Next30Days           int     `json:"next30Days"`
	Next30DaysIncome     float64 `json:"next30DaysIncome"`
}

// CalendarDay groups the events of one day of a month into ex-date and
// pay-date buckets for calendar rendering.
type CalendarDay struct {
	Ex  []DividendEvent `json:"ex"`
	Pay []DividendEvent `json:"pay"`
}
