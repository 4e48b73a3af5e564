// Package validation checks operator input before it reaches the API.
package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// IssueURL is the parsed form of https://<host>/<owner>/<repo>/issues/<number>.
type IssueURL struct {
	Host   string
	Owner  string
	Repo   string
	Number int
}

// ParseIssueURL checks that s looks like a GitHub issue URL. Hosts other
// than github.com are accepted for GitHub Enterprise.
func ParseIssueURL(s string) (IssueURL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return IssueURL{}, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return IssueURL{}, fmt.Errorf("invalid URL %q: scheme must be http or https", s)
	}
	if u.Host == "" {
		return IssueURL{}, fmt.Errorf("invalid URL %q: missing host", s)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[2] != "issues" {
		return IssueURL{}, fmt.Errorf("%q is not an issue URL (want /<owner>/<repo>/issues/<number>)", s)
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil || n <= 0 {
		return IssueURL{}, fmt.Errorf("%q has an invalid issue number %q", s, parts[3])
	}
	if parts[0] == "" || parts[1] == "" {
		return IssueURL{}, fmt.Errorf("%q is missing owner or repository", s)
	}

	return IssueURL{Host: u.Host, Owner: parts[0], Repo: parts[1], Number: n}, nil
}

// String renders the canonical https form.
func (u IssueURL) String() string {
	return fmt.Sprintf("https://%s/%s/%s/issues/%d", u.Host, u.Owner, u.Repo, u.Number)
}
