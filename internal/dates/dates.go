// Package dates provides day-granularity date arithmetic for dividend
// scheduling: cadence projection, business-day offsets, and day counting.
// Dates are civil dates (no time-of-day, no timezone) and serialize as
// ISO-8601 YYYY-MM-DD strings.
package dates

import (
	"fmt"
	"time"
)

// Format is the canonical string representation of a Date.
const Format = "2006-01-02"

// SettlementDays is the business-day offset between an ex-dividend date and
// the projected payment date. Brokers settle dividend payments two to three
// business days after the ex-date; this codebase uses two everywhere.
const SettlementDays = 2

// Date represents a calendar date with day-level granularity.
// The zero value is the zero date and reports IsZero() == true.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range values are normalized the same way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Parse parses an ISO-8601 date string (YYYY-MM-DD).
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return New(t.Date()), nil
}

// FromTime truncates a time.Time to its UTC calendar date.
func FromTime(t time.Time) Date {
	return New(t.UTC().Date())
}

// Today returns the current date in UTC.
func Today() Date { return FromTime(time.Now()) }

// time returns the canonical time.Time for the date: midnight UTC.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time { return d.time() }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Format) }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// AddDays returns a new Date with n calendar days added. n may be negative.
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// AddMonths returns a new Date with n calendar months added.
// Day-of-month overflow normalizes forward (Jan 31 + 1 month = Mar 2/3),
// matching time.Time.AddDate semantics.
func (d Date) AddMonths(n int) Date { return New(d.y, d.m+time.Month(n), d.d) }

// Sub returns the number of whole days from x to d. Negative if d is before x.
func (d Date) Sub(x Date) int {
	return int(d.time().Sub(x.time()).Hours() / 24)
}

// MarshalJSON encodes the date as a YYYY-MM-DD JSON string.
// The zero date encodes as an empty string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD JSON string. An empty string decodes to
// the zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	s = s[1 : len(s)-1]
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddBusinessDays advances the date one calendar day at a time, counting only
// Monday through Friday, until n business days have been added. The returned
// date never falls on a Saturday or Sunday for n >= 1.
func AddBusinessDays(d Date, n int) Date {
	added := 0
	for added < n {
		d = d.AddDays(1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return d
}

// DaysUntil returns the number of whole days from today until target,
// floored at zero. Past dates report 0, never a negative count.
func DaysUntil(today, target Date) int {
	days := target.Sub(today)
	if days < 0 {
		return 0
	}
	return days
}
