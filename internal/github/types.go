// Package github implements the issue remote on top of the GitHub GraphQL API.
//
// A Client resolves issue URLs through the top-level resource query and
// closes issues with the closeIssue mutation. Each call is a single HTTP
// request; failures are reported, never retried.
package github

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// API configuration constants.
const (
	// DefaultAPIEndpoint is the GitHub GraphQL endpoint.
	DefaultAPIEndpoint = "https://api.github.com/graphql"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 10 * 1024 * 1024
)

// Client talks to the GitHub GraphQL API.
type Client struct {
	Token      string        // Token sent as a bearer credential
	Endpoint   string        // GraphQL endpoint (default: https://api.github.com/graphql)
	HTTPClient *http.Client  // Optional custom HTTP client
	Limiter    *rate.Limiter // Optional client-side request pacing
	UserAgent  string
}

// graphQLRequest is the body POSTed for every call.
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse is the envelope of every GraphQL reply.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// graphQLError is one entry of the errors array.
type graphQLError struct {
	Message string   `json:"message"`
	Type    string   `json:"type,omitempty"` // e.g. NOT_FOUND, FORBIDDEN
	Path    []string `json:"path,omitempty"`
}

// resourceQuery looks up whatever object lives at a URL.
const resourceQuery = `query($url: URI!) {
  resource(url: $url) {
    __typename
    ... on Issue {
      createdAt
      id
      title
      url
    }
  }
}`

// closeIssueMutation closes an issue by node ID.
const closeIssueMutation = `mutation($id: ID!) {
  closeIssue(input: {issueId: $id}) {
    issue {
      state
      url
    }
  }
}`

type resourceData struct {
	Resource *resourceNode `json:"resource"`
}

type resourceNode struct {
	TypeName  string `json:"__typename"`
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

type closeIssueData struct {
	CloseIssue *struct {
		Issue *issueNode `json:"issue"`
	} `json:"closeIssue"`
}

type issueNode struct {
	State string `json:"state"`
	URL   string `json:"url"`
}
