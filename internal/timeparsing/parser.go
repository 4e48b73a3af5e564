// Package timeparsing finds and resolves dates written in free text.
//
// Single values (the --now flag) go through a layered parser:
//  1. Compact duration (+6h, -1d, +2w)
//  2. Absolute timestamp (date-only, RFC3339)
//  3. Natural language (tomorrow, next monday)
//
// Issue titles go through Extract, which returns every date or date range
// found in the text together with its resolved start and end instants.
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// dateOnlyLayout is the layout accepted by the date-only layer.
const dateOnlyLayout = "2006-01-02"

// compactDurationRe matches offsets like +6h, -1d, 2w, 3m or 1y.
var compactDurationRe = regexp.MustCompile(`^([+-]?)(\d+)([hdwmy])$`)

// IsCompactDuration reports whether s is a compact offset.
func IsCompactDuration(s string) bool {
	return compactDurationRe.MatchString(s)
}

// ParseCompactDuration shifts now by a compact offset: h hours, d days,
// w weeks, m calendar months, y years. An unsigned amount moves forward.
// Day and larger units keep the wall-clock time across DST changes.
func ParseCompactDuration(s string, now time.Time) (time.Time, error) {
	m := compactDurationRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("not a compact duration: %q", s)
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration amount %q: %w", m[2], err)
	}
	if m[1] == "-" {
		n = -n
	}

	switch m[3] {
	case "h":
		return now.Add(time.Duration(n) * time.Hour), nil
	case "d":
		return now.AddDate(0, 0, n), nil
	case "w":
		return now.AddDate(0, 0, 7*n), nil
	case "m":
		return now.AddDate(0, n, 0), nil
	default:
		return now.AddDate(n, 0, 0), nil
	}
}

// ParseRelativeTime resolves s against now, trying each layer in order:
// compact duration, date-only, RFC3339, then natural language.
// Date-only values resolve to local midnight.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	if IsCompactDuration(s) {
		return ParseCompactDuration(s, now)
	}

	if t, err := time.ParseInLocation(dateOnlyLayout, s, time.Local); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := ParseNaturalLanguage(s, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("cannot parse time expression %q (try +1d, tomorrow, 2025-01-15 or RFC3339)", s)
}
