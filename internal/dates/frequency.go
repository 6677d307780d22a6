package dates

import "strings"

// Frequency describes how often a fund pays dividends.
type Frequency string

// Recognized payment frequencies. Unknown is what frequency inference
// reports when it has too little history to classify; for projection it
// behaves like Quarterly (the documented fallback in NextOccurrence).
const (
	Monthly    Frequency = "Monthly"
	Quarterly  Frequency = "Quarterly"
	SemiAnnual Frequency = "Semi-annual"
	Annual     Frequency = "Annual"
	Unknown    Frequency = "Unknown"
)

// ParseFrequency normalizes a frequency string, case-insensitively.
// Unrecognized values map to Unknown.
func ParseFrequency(s string) Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return Monthly
	case "quarterly":
		return Quarterly
	case "semi-annual", "semiannual":
		return SemiAnnual
	case "annual", "yearly":
		return Annual
	default:
		return Unknown
	}
}

// Months returns the cadence length in months. Unknown and any other
// unrecognized frequency default to a quarterly cadence.
func (f Frequency) Months() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case SemiAnnual:
		return 6
	case Annual:
		return 12
	default:
		return 3
	}
}

// PaymentsPerYear returns how many payments a year the frequency implies.
func (f Frequency) PaymentsPerYear() int {
	return 12 / f.Months()
}

// NextOccurrence projects the next payment date from the last one by adding
// one cadence interval: 1, 3, 6, or 12 months for Monthly, Quarterly,
// Semi-annual, and Annual. An unrecognized or Unknown frequency falls back to
// Quarterly; that is a documented default, not an error.
func NextOccurrence(last Date, freq Frequency) Date {
	return last.AddMonths(freq.Months())
}
