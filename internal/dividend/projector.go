package dividend

import (
	"sort"

	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
)

// DefaultHorizonDays is how far ahead Project looks when the caller does not
// say otherwise.
const DefaultHorizonDays = 90

// Urgency thresholds in days until the ex-date.
const (
	highUrgencyDays   = 7
	mediumUrgencyDays = 30
)

// Period filters for FilterByPeriod.
const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodAll     = "all"
)

// Project computes the upcoming dividend events for the given positions
// within horizonDays of today.
//
// Each position is matched to its fund by symbol. Positions with no matching
// fund, or whose fund lacks dividend data, are skipped silently: a projection
// omits unknowable events rather than erroring on partial data. The next
// ex-date is one cadence interval past the fund's last known ex-date, and the
// event is included only when today <= exDate <= today+horizonDays. Pay dates
// fall a fixed business-day settlement offset after the ex-date.
//
// The result is sorted ascending by ex-date. Consumers render it in order
// without re-sorting, so the ordering is part of the contract.
func Project(positions []model.Position, funds []model.Fund, today dates.Date, horizonDays int) []model.DividendEvent {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	cutoff := today.AddDays(horizonDays)

	bySymbol := make(map[string]model.Fund, len(funds))
	for _, f := range funds {
		bySymbol[f.Symbol] = f
	}

	events := []model.DividendEvent{}
	for _, pos := range positions {
		fund, ok := bySymbol[pos.Symbol]
		if !ok || !fund.HasDividendData() {
			continue
		}

		nextEx := dates.NextOccurrence(fund.ExDividendDate, fund.Frequency)
		if nextEx.Before(today) || nextEx.After(cutoff) {
			continue
		}

		daysUntil := dates.DaysUntil(today, nextEx)
		events = append(events, model.DividendEvent{
			Symbol:           pos.Symbol,
			Name:             fund.Name,
			ExDate:           nextEx,
			PayDate:          dates.AddBusinessDays(nextEx, dates.SettlementDays),
			DividendPerShare: fund.DividendPerShare,
			Shares:           pos.Shares,
			EstimatedAmount:  fund.DividendPerShare * pos.Shares,
			Frequency:        fund.Frequency,
			DaysUntilEx:      daysUntil,
			Priority:         priority(daysUntil),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ExDate.Before(events[j].ExDate)
	})

	return events
}

func priority(daysUntilEx int) string {
	switch {
	case daysUntilEx <= highUrgencyDays:
		return model.UrgencyHigh
	case daysUntilEx <= mediumUrgencyDays:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

// Summarize computes dashboard statistics over a projected event list.
func Summarize(events []model.DividendEvent) model.DividendSummary {
	summary := model.DividendSummary{TotalUpcoming: len(events)}
	for _, ev := range events {
		summary.TotalEstimatedIncome += ev.EstimatedAmount
		if ev.DaysUntilEx <= highUrgencyDays {
			summary.Next7Days++
			summary.Next7DaysIncome += ev.EstimatedAmount
		}
		if ev.DaysUntilEx <= mediumUrgencyDays {
			summary.Next30Days++
			summary.Next30DaysIncome += ev.EstimatedAmount
		}
	}
	return summary
}

// FilterByPeriod restricts events to those whose ex-date falls within the
// named period from today: week (7 days), month (30), or quarter (90).
// Any other period returns the list unchanged.
func FilterByPeriod(events []model.DividendEvent, today dates.Date, period string) []model.DividendEvent {
	var days int
	switch period {
	case PeriodWeek:
		days = 7
	case PeriodMonth:
		days = 30
	case PeriodQuarter:
		days = 90
	default:
		return events
	}

	cutoff := today.AddDays(days)
	filtered := []model.DividendEvent{}
	for _, ev := range events {
		if !ev.ExDate.After(cutoff) {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// Calendar groups events into a day-of-month map for one calendar month,
// bucketing by ex-date and pay-date separately. An event whose ex-date and
// pay-date both fall in the month appears in both buckets.
func Calendar(events []model.DividendEvent, year int, month int) map[int]model.CalendarDay {
	calendar := make(map[int]model.CalendarDay)
	inMonth := func(d dates.Date) bool {
		return d.Year() == year && int(d.Month()) == month
	}

	for _, ev := range events {
		if inMonth(ev.ExDate) {
			day := calendar[ev.ExDate.Day()]
			day.Ex = append(day.Ex, ev)
			calendar[ev.ExDate.Day()] = day
		}
		if inMonth(ev.PayDate) {
			day := calendar[ev.PayDate.Day()]
			day.Pay = append(day.Pay, ev)
			calendar[ev.PayDate.Day()] = day
		}
	}
	return calendar
}
