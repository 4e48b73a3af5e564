package tracker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/expire-issues/expire-issues/internal/types"
)

const (
	testURL = "https://github.com/octocat/spoon-knife/issues/1"
	testID  = "MDU6SXNzdWU3MDQ1MTA1NzE="
)

func TestResolve_Success(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue(testID, testURL, "Out Jan 31", "2020-01-23T00:00:00Z")

	got, err := Resolve(context.Background(), remote, testURL)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	wantCreated, _ := time.Parse(time.RFC3339, "2020-01-23T00:00:00Z")
	want := types.Issue{
		ID:        testID,
		CreatedAt: wantCreated,
		Title:     "Out Jan 31",
		URL:       testURL,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
	if len(remote.queried) != 1 || remote.queried[0] != testURL {
		t.Errorf("queried = %v, want exactly [%s]", remote.queried, testURL)
	}
}

func TestResolve_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		resource *Resource
	}{
		{name: "null resource", resource: nil},
		{name: "pull request", resource: &Resource{TypeName: "PullRequest"}},
		{name: "repository", resource: &Resource{TypeName: "Repository"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newMockRemote()
			remote.resources[testURL] = tt.resource

			_, err := Resolve(context.Background(), remote, testURL)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Resolve() error = %v, want ErrNotFound", err)
			}
			if !strings.Contains(err.Error(), testURL) {
				t.Errorf("error %q should name the URL", err)
			}
		})
	}
}

func TestResolve_RemoteError(t *testing.T) {
	remote := newMockRemote()
	remote.queryErr = errors.New("connection refused")

	_, err := Resolve(context.Background(), remote, testURL)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("Resolve() error = %v, want ErrRemote", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error %q should carry the cause", err)
	}
}

func TestResolve_RemoteErrorNotDoubleWrapped(t *testing.T) {
	remote := newMockRemote()
	remote.queryErr = errRemoteFixture

	_, err := Resolve(context.Background(), remote, testURL)
	if err != errRemoteFixture {
		t.Errorf("Resolve() error = %v, want the remote's error unchanged", err)
	}
}

func TestResolve_MalformedCreatedAt(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue(testID, testURL, "Out Jan 31", "yesterday-ish")

	_, err := Resolve(context.Background(), remote, testURL)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Resolve() error = %v, want ErrParse", err)
	}
}

func TestResolve_IncompletePayload(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("", testURL, "Out Jan 31", "2020-01-23T00:00:00Z")

	_, err := Resolve(context.Background(), remote, testURL)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("Resolve() error = %v, want ErrRemote", err)
	}
}
