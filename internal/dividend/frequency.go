// Package dividend contains the pure dividend-scheduling core: payment
// cadence inference from historical ex-dividend dates, and forward projection
// of payment events for held positions.
package dividend

import "github.com/dividenddash/backend/internal/dates"

// maxInferenceGaps caps how many recent inter-payment gaps feed the average.
// Older history is more likely to predate a cadence change.
const maxInferenceGaps = 4

// InferFrequency derives a payment cadence from a fund's historical
// ex-dividend dates, which must be sorted descending (most recent first).
//
// The average of up to the four most recent inter-payment gaps is bucketed:
// up to 35 days reads as Monthly, up to 100 as Quarterly, up to 200 as
// Semi-annual, anything longer as Annual. Fewer than two dates yield Unknown,
// which projection treats as Quarterly.
//
// This is a heuristic classifier. Special dividends and cadence changes skew
// the average, and no correction is attempted; callers that know better can
// override the result.
func InferFrequency(exDates []dates.Date) dates.Frequency {
	if len(exDates) < 2 {
		return dates.Unknown
	}

	gaps := len(exDates) - 1
	if gaps > maxInferenceGaps {
		gaps = maxInferenceGaps
	}

	total := 0
	for i := 0; i < gaps; i++ {
		total += exDates[i].Sub(exDates[i+1])
	}
	avg := float64(total) / float64(gaps)

	switch {
	case avg <= 35:
		return dates.Monthly
	case avg <= 100:
		return dates.Quarterly
	case avg <= 200:
		return dates.SemiAnnual
	default:
		return dates.Annual
	}
}
