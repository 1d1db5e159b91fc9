// Package dateutil provides canonical calendar-day formatting for daybook.
//
// Every store and API call keys tasks and notes by a canonical date string
// in YYYY-MM-DD form. The canonical day is the caller's local calendar day,
// not the UTC day: converting through UTC would shift entries created late
// in the evening onto the wrong day.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical date format used throughout daybook.
const Layout = "2006-01-02"

// Canonical returns the canonical YYYY-MM-DD string for the local calendar
// day of t.
func Canonical(t time.Time) string {
	return t.Local().Format(Layout)
}

// Today returns the canonical date string for the current local day.
func Today() string {
	return Canonical(time.Now())
}

// Validate checks that date is a well-formed canonical date string.
func Validate(date string) error {
	if date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(Layout, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

// DayLabel returns the uppercase weekday name for a canonical date string,
// e.g. "MONDAY". Returns an error if date is not canonical.
func DayLabel(date string) (string, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return strings.ToUpper(t.Weekday().String()), nil
}
