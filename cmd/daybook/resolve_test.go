package main

import (
	"testing"
	"time"

	"github.com/jwhitt/daybook/internal/dateutil"
)

// TestResolveDate_Canonical tests that a canonical date passes through
// untouched
func TestResolveDate_Canonical(t *testing.T) {
	got, err := resolveDate("2024-06-01")
	if err != nil {
		t.Fatalf("resolveDate() failed: %v", err)
	}
	if got != "2024-06-01" {
		t.Errorf("resolveDate() = %q, want '2024-06-01'", got)
	}
}

// TestResolveDate_NaturalLanguage tests the natural language path.
// Both sides of the comparison are computed around the call so a midnight
// rollover mid-test cannot produce a false failure.
func TestResolveDate_NaturalLanguage(t *testing.T) {
	before := dateutil.Canonical(time.Now())
	got, err := resolveDate("today")
	after := dateutil.Canonical(time.Now())
	if err != nil {
		t.Fatalf("resolveDate(today) failed: %v", err)
	}
	if got != before && got != after {
		t.Errorf("resolveDate(today) = %q, want %q", got, before)
	}

	before = dateutil.Canonical(time.Now().AddDate(0, 0, 1))
	got, err = resolveDate("tomorrow")
	after = dateutil.Canonical(time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("resolveDate(tomorrow) failed: %v", err)
	}
	if got != before && got != after {
		t.Errorf("resolveDate(tomorrow) = %q, want %q", got, before)
	}
}

// TestResolveDate_Unrecognized tests that input neither canonical nor
// parseable yields an error
func TestResolveDate_Unrecognized(t *testing.T) {
	for _, input := range []string{"blorp", ""} {
		if _, err := resolveDate(input); err == nil {
			t.Errorf("resolveDate(%q) = nil error, want error", input)
		}
	}
}
