// Package portfolio computes market valuations for held positions by joining
// them against current fund quotes.
package portfolio

import (
	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
)

// Valuate enriches each position with its current market value, unrealized
// gain/loss, and projected dividend income, plus aggregate totals.
//
// A position with no matching fund is priced at its own average cost, so a
// delisted or unknown symbol still shows a value (with zero gain/loss) rather
// than an unpriced hole. This is deliberately asymmetric with the dividend
// projector, which omits unknowable events entirely.
func Valuate(positions []model.Position, funds []model.Fund) ([]model.PositionValuation, model.PortfolioTotals) {
	bySymbol := make(map[string]model.Fund, len(funds))
	for _, f := range funds {
		bySymbol[f.Symbol] = f
	}

	valuations := make([]model.PositionValuation, 0, len(positions))
	totals := model.PortfolioTotals{Positions: len(positions)}

	for _, pos := range positions {
		fund, hasFund := bySymbol[pos.Symbol]

		price := pos.AvgCost
		if hasFund && fund.Price > 0 {
			price = fund.Price
		}

		v := model.PositionValuation{
			Position:     pos,
			CurrentPrice: price,
			CurrentValue: price * pos.Shares,
		}
		v.GainLoss = v.CurrentValue - pos.CostBasis
		if pos.CostBasis != 0 {
			v.GainLossPercent = v.GainLoss / pos.CostBasis * 100
		}
		if hasFund && fund.DividendPerShare > 0 {
			v.MonthlyIncome = monthlyIncome(fund.DividendPerShare*pos.Shares, fund.Frequency)
			v.AnnualIncome = v.MonthlyIncome * 12
		}

		totals.TotalValue += v.CurrentValue
		totals.TotalCost += pos.CostBasis
		totals.MonthlyIncome += v.MonthlyIncome
		totals.AnnualIncome += v.AnnualIncome

		valuations = append(valuations, v)
	}

	totals.GainLoss = totals.TotalValue - totals.TotalCost
	if totals.TotalCost != 0 {
		totals.GainLossPercent = totals.GainLoss / totals.TotalCost * 100
	}

	return valuations, totals
}

// monthlyIncome converts an annual dividend amount into a true monthly rate.
// Quarterly income is annualized then spread over the three months of the
// quarter, and semi-annual over six, rather than naively divided by the
// payment count. This is the dashboard's long-standing convention and it must
// be preserved as-is.
func monthlyIncome(annualDividend float64, freq dates.Frequency) float64 {
	switch freq {
	case dates.Monthly:
		return annualDividend / 12
	case dates.Quarterly:
		return annualDividend / 4 / 3
	case dates.SemiAnnual:
		return annualDividend / 2 / 6
	case dates.Annual:
		return annualDividend / 12
	default:
		return annualDividend / 4 / 3
	}
}
