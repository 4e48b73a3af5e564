package tracker

import (
	"context"
)

// Remote is the narrow boundary to the issue tracker API.
// Implementations make exactly one request per call and never retry.
// A non-nil error always means the request itself failed (transport,
// HTTP status, undecodable response, or API errors on a read).
type Remote interface {
	// QueryResource looks up the resource at url.
	// Returns nil, nil when the API reports no resource for it.
	QueryResource(ctx context.Context, url string) (*Resource, error)

	// CloseIssue closes the issue addressed by its opaque node ID.
	// Errors reported by the API in the response body are returned in
	// CloseResponse.Errors, not as err.
	CloseIssue(ctx context.Context, issueID string) (*CloseResponse, error)
}
