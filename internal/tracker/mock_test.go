package tracker

import (
	"context"
	"fmt"

	"github.com/expire-issues/expire-issues/internal/types"
)

// mockRemote implements Remote for testing.
type mockRemote struct {
	resources map[string]*Resource      // keyed by URL
	closeResp map[string]*CloseResponse // keyed by issue ID; default reports CLOSED
	queryErr  error
	closeErr  error

	queried []string
	closed  []string
}

func newMockRemote() *mockRemote {
	return &mockRemote{
		resources: make(map[string]*Resource),
		closeResp: make(map[string]*CloseResponse),
	}
}

// addIssue registers an issue resource at url.
func (m *mockRemote) addIssue(id, url, title, createdAt string) {
	m.resources[url] = &Resource{
		TypeName:  TypeIssue,
		ID:        id,
		CreatedAt: createdAt,
		Title:     title,
		URL:       url,
	}
}

func (m *mockRemote) QueryResource(_ context.Context, url string) (*Resource, error) {
	m.queried = append(m.queried, url)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.resources[url], nil
}

func (m *mockRemote) CloseIssue(_ context.Context, issueID string) (*CloseResponse, error) {
	m.closed = append(m.closed, issueID)
	if m.closeErr != nil {
		return nil, m.closeErr
	}
	if resp, ok := m.closeResp[issueID]; ok {
		return resp, nil
	}
	for _, r := range m.resources {
		if r.ID == issueID {
			return &CloseResponse{Issue: &IssueRef{State: types.StateClosed, URL: r.URL}}, nil
		}
	}
	return nil, fmt.Errorf("unknown issue id %s", issueID)
}
