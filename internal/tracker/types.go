// Package tracker resolves, evaluates and closes issues through a Remote.
//
// The flow for each issue URL is strictly sequential:
// Resolve (one read) → expiry evaluation → Close (one mutation, only when
// expired). Any error stops the run.
package tracker

import (
	"github.com/expire-issues/expire-issues/internal/types"
)

// TypeIssue is the GraphQL type name of an issue resource.
const TypeIssue = "Issue"

// Resource is the payload of a resource-by-URL read.
// Only TypeName is guaranteed; the remaining fields are set for issues.
type Resource struct {
	TypeName  string // GraphQL __typename, e.g. "Issue" or "PullRequest"
	ID        string // Opaque node ID
	CreatedAt string // ISO-8601 timestamp as returned by the API
	Title     string
	URL       string
}

// IssueRef is the issue reported back by a close mutation.
type IssueRef struct {
	State types.IssueState
	URL   string
}

// CloseResponse is the payload of a close mutation.
type CloseResponse struct {
	Issue  *IssueRef // nil when the API returned no issue
	Errors []string  // Error messages reported by the API
}
