package vacation

import (
	"time"
)

// =============================================================================
// DATE - Plain calendar date (no clock, no time zone)
// =============================================================================

// Date is a single calendar day. All entitlement arithmetic works on whole
// days, so the wrapped time.Time is always normalized to midnight UTC and
// callers never see a clock component.
type Date struct {
	t time.Time
}

// HumanFormat is the human-facing date layout used across reports,
// order documents and the HTTP API.
const HumanFormat = "02.01.2006"

// parseFormats lists every layout accepted on input, most common first.
// Date strings arrive from several upstream systems that never agreed
// on a single format.
var parseFormats = []string{
	"02.01.2006",
	"2006-01-02",
	"02-01-2006",
	"02.01.2006 15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006 15:04:05",
	"2006/01/02 15:04:05",
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date string against every accepted layout.
// Returns InvalidDateError carrying the offending value when none match.
func ParseDate(s string) (Date, error) {
	for _, layout := range parseFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, &InvalidDateError{Value: s}
}

// MustDate is a test/fixture helper; it panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int            { return d.t.Year() }
func (d Date) Month() time.Month    { return d.t.Month() }
func (d Date) Day() int             { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool         { return d.t.IsZero() }

// IsWeekend reports whether the day falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Time exposes the underlying midnight-UTC instant for persistence layers.
func (d Date) Time() time.Time { return d.t }

// String renders the date in the human-facing DD.MM.YYYY convention.
func (d Date) String() string { return d.t.Format(HumanFormat) }

// DaysBetween returns the signed number of whole days from one date to
// another. Same day yields 0.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}
