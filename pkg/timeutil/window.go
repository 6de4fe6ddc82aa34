// Package timeutil parses the loose date and duration forms accepted on the
// command line.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

const day = 24 * time.Hour

var (
	segmentPattern = regexp.MustCompile(`^(\d+)\s*([a-z]+)\s*`)

	// Writing happens on the scale of days, so the smallest unit is an hour.
	units = map[string]time.Duration{
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day,
		"w": 7 * day, "wk": 7 * day, "week": 7 * day, "weeks": 7 * day,
	}
)

// ParseWindow reads durations such as "3d", "2 weeks" or "1w2d" and returns
// the duration with a compact label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid window %q", input)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window %q: %w", input, err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unknown unit %q in window %q", m[2], input)
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window %q must be longer than zero", input)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with w, d and h tokens, dropping anything smaller
// than an hour.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", 7 * day}, {"d", day}, {"h", time.Hour}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}
