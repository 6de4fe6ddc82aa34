package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutISO   = "2006-1-2"
	layoutShort = "1/2"
	layoutMonth = "2006-1"
)

// ParseDay reads "today", "yesterday", "2024-3-21" or "3/21" relative to now.
// The short form keeps now's year. The result is midnight local time.
func ParseDay(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "today":
		return StartOfDay(now), nil
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}
	if t, err := time.ParseInLocation(layoutISO, s, now.Location()); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutShort, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected 2024-3-21 or 3/21", input)
	}
	return t.AddDate(now.Year(), 0, 0), nil
}

// ParseMonth reads "2024-3" or a day accepted by ParseDay and returns the
// first of that month.
func ParseMonth(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if t, err := time.ParseInLocation(layoutMonth, s, now.Location()); err == nil {
		return t, nil
	}
	t, err := ParseDay(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected 2024-3", input)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
