package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/expire-issues/expire-issues/internal/debug"
	"github.com/expire-issues/expire-issues/internal/tracker"
	"github.com/expire-issues/expire-issues/internal/types"
)

var _ tracker.Remote = (*Client)(nil)

// NewClient creates a new GitHub client.
func NewClient(token string) *Client {
	return &Client{
		Token:    token,
		Endpoint: DefaultAPIEndpoint,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent: "expire-issues",
	}
}

// WithHTTPClient returns a new client with a custom HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	clone := *c
	clone.HTTPClient = httpClient
	return &clone
}

// WithEndpoint returns a new client with a custom endpoint (for testing or GitHub Enterprise).
func (c *Client) WithEndpoint(endpoint string) *Client {
	clone := *c
	clone.Endpoint = endpoint
	return &clone
}

// WithLimiter returns a new client that waits on limiter before each request.
func (c *Client) WithLimiter(limiter *rate.Limiter) *Client {
	clone := *c
	clone.Limiter = limiter
	return &clone
}

// QueryResource resolves url. It returns nil, nil when GitHub has nothing
// there.
func (c *Client) QueryResource(ctx context.Context, url string) (*tracker.Resource, error) {
	resp, err := c.doRequest(ctx, resourceQuery, map[string]interface{}{"url": url})
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: resource %s: %s", tracker.ErrRemote, url, joinErrors(resp.Errors))
	}

	var data resourceData
	if err := decodeData(resp, &data); err != nil {
		return nil, err
	}
	if data.Resource == nil {
		return nil, nil
	}

	n := data.Resource
	return &tracker.Resource{
		TypeName:  n.TypeName,
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		Title:     n.Title,
		URL:       n.URL,
	}, nil
}

// CloseIssue runs the closeIssue mutation. GraphQL errors are returned in
// the response rather than as an error so the caller can name the issue.
func (c *Client) CloseIssue(ctx context.Context, issueID string) (*tracker.CloseResponse, error) {
	resp, err := c.doRequest(ctx, closeIssueMutation, map[string]interface{}{"id": issueID})
	if err != nil {
		return nil, err
	}

	out := &tracker.CloseResponse{}
	for _, e := range resp.Errors {
		out.Errors = append(out.Errors, e.Message)
	}

	var data closeIssueData
	if err := decodeData(resp, &data); err != nil {
		if len(out.Errors) > 0 {
			return out, nil
		}
		return nil, err
	}
	if data.CloseIssue != nil && data.CloseIssue.Issue != nil {
		state := types.IssueState(data.CloseIssue.Issue.State)
		if !state.IsValid() {
			return nil, fmt.Errorf("%w: closeIssue returned unknown state %q", tracker.ErrRemote, state)
		}
		out.Issue = &tracker.IssueRef{
			State: state,
			URL:   data.CloseIssue.Issue.URL,
		}
	}
	return out, nil
}

// doRequest POSTs one GraphQL operation. There is no retry: transport
// failures and non-2xx statuses come back as tracker.ErrRemote.
func (c *Client) doRequest(ctx context.Context, query string, variables map[string]interface{}) (*graphQLResponse, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	debug.Logf("github: POST %s\n", endpoint)
	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: request failed: %w", tracker.ErrRemote, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", tracker.ErrRemote, err)
	}
	debug.Logf("github: status %d, %d bytes\n", resp.StatusCode, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: API error: %s (status %d)", tracker.ErrRemote, strings.TrimSpace(string(respBody)), resp.StatusCode)
	}

	var out graphQLResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %w", tracker.ErrRemote, err)
	}
	return &out, nil
}

func decodeData(resp *graphQLResponse, v interface{}) error {
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return fmt.Errorf("%w: response has no data", tracker.ErrRemote)
	}
	if err := json.Unmarshal(resp.Data, v); err != nil {
		return fmt.Errorf("%w: failed to parse data: %w", tracker.ErrRemote, err)
	}
	return nil
}

func joinErrors(errs []graphQLError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
