package timeparsing

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// ErrParse is returned when a timestamp cannot be resolved to an instant.
var ErrParse = errors.New("unparseable timestamp")

// ParseTimestamp parses an ISO-8601 style timestamp such as the createdAt
// values returned by the GitHub API. Values without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrParse, s, err)
	}
	return t, nil
}
