// Package types defines the data structures shared by the expire-issues packages.
package types

import (
	"fmt"
	"time"
)

// Issue is a GitHub issue as seen by one processing cycle.
// It is built from a single remote read and discarded afterwards.
type Issue struct {
	ID        string    `json:"id"`         // Opaque node ID, used only to address mutations
	CreatedAt time.Time `json:"created_at"` // Anchor for dates in the title
	Title     string    `json:"title"`
	URL       string    `json:"url"` // Canonical locator
}

// Validate checks the invariants every resolved issue must hold.
func (i Issue) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("issue id is required")
	}
	if i.URL == "" {
		return fmt.Errorf("issue url is required")
	}
	if i.CreatedAt.IsZero() {
		return fmt.Errorf("issue created_at is required")
	}
	return nil
}

// String returns the issue URL, which is how issues are named in messages.
func (i Issue) String() string {
	return i.URL
}

// IssueState is the remote state of an issue.
type IssueState string

// Issue state constants as reported by the GraphQL API
const (
	StateOpen   IssueState = "OPEN"
	StateClosed IssueState = "CLOSED"
)

// IsValid checks if the state value is one the API reports
func (s IssueState) IsValid() bool {
	switch s {
	case StateOpen, StateClosed:
		return true
	}
	return false
}

// IsClosed reports whether the state is CLOSED
func (s IssueState) IsClosed() bool {
	return s == StateClosed
}
