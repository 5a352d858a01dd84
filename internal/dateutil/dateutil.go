// Package dateutil handles the calendar-day arithmetic the engine is
// built on. All dates cross package boundaries as "YYYY-MM-DD" strings;
// because the format is fixed-width and zero-padded, lexicographic
// comparison of two date strings is chronological comparison. That
// invariant is relied on throughout the engine and must not be broken.
package dateutil

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Format renders t's local year, month and day as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a YYYY-MM-DD string as midnight UTC. It rejects anything
// that does not round-trip exactly (e.g. "2024-1-5", "2024-13-01").
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of whole days from a to b (negative if
// b precedes a). Both dates are anchored at UTC midnight so the result
// is immune to daylight-saving shifts that would make a naive local
// subtraction come out a fraction of a day short or long.
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta) / (24 * time.Hour)), nil
}

// AddDays shifts a date by n calendar days, rolling over months and
// years as needed. n may be negative.
func AddDays(s string, n int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// Weekday returns the day of week for a date string (0=Sunday..6=Saturday).
func Weekday(s string) (time.Weekday, error) {
	t, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}
