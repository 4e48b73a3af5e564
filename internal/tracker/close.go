package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/expire-issues/expire-issues/internal/types"
)

// Close closes issue and checks that the API reports it closed at the
// same URL. Closing an already closed issue succeeds if the API says so.
func Close(ctx context.Context, remote Remote, issue types.Issue) error {
	resp, err := remote.CloseIssue(ctx, issue.ID)
	if err != nil {
		if errors.Is(err, ErrRemote) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}

	switch {
	case resp == nil:
		return fmt.Errorf("%w %s: empty response", ErrCloseFailed, issue)
	case len(resp.Errors) > 0:
		return fmt.Errorf("%w %s: %s", ErrCloseFailed, issue, strings.Join(resp.Errors, "; "))
	case resp.Issue == nil:
		return fmt.Errorf("%w %s: no issue in response", ErrCloseFailed, issue)
	case resp.Issue.URL != issue.URL:
		return fmt.Errorf("%w %s: response names %s", ErrCloseFailed, issue, resp.Issue.URL)
	case !resp.Issue.State.IsClosed():
		return fmt.Errorf("%w %s: state is %s", ErrCloseFailed, issue, resp.Issue.State)
	}
	return nil
}
