package model

import "github.com/dividenddash/backend/internal/dates"

// Position represents a user's aggregated stake in one fund. Exactly one
// Position exists per symbol; repeat purchases merge into it using the
// weighted-average cost method.
type Position struct {
	Symbol       string     `json:"symbol"`
	Name         string     `json:"name"`
	Sector       string     `json:"sector"`
	Shares       float64    `json:"shares"`
	AvgCost      float64    `json:"avgCost"`   // weighted-average cost per share
	CostBasis    float64    `json:"costBasis"` // shares * avgCost, equals sum of lot costs
	PurchaseDate dates.Date `json:"purchaseDate"` // most recent purchase wins
}

// PositionValuation is a Position joined against the current fund quote.
// A position whose symbol has no matching fund is valued at its own average
// cost, so it shows no gain or loss rather than an unpriced hole.
type PositionValuation struct {
	Position
	CurrentPrice    float64 `json:"currentPrice"`
	CurrentValue    float64 `json:"currentValue"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
	MonthlyIncome   float64 `json:"monthlyIncome"` // projected dividend income per month
	AnnualIncome    float64 `json:"annualIncome"`  // projected dividend income per year
}

// PortfolioTotals aggregates valuations across all positions.
type PortfolioTotals struct {
	Positions       int     `json:"positions"`
	TotalValue      float64 `json:"totalValue"`
	TotalCost       float64 `json:"totalCost"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	AnnualIncome    float64 `json:"annualIncome"`
}
