package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/expire-issues/expire-issues/internal/timeparsing"
	"github.com/expire-issues/expire-issues/internal/types"
)

// Resolve reads the issue at url from remote.
func Resolve(ctx context.Context, remote Remote, url string) (types.Issue, error) {
	res, err := remote.QueryResource(ctx, url)
	if err != nil {
		if errors.Is(err, ErrRemote) {
			return types.Issue{}, err
		}
		return types.Issue{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	if res == nil || res.TypeName != TypeIssue {
		return types.Issue{}, fmt.Errorf("%w %s", ErrNotFound, url)
	}

	createdAt, err := timeparsing.ParseTimestamp(res.CreatedAt)
	if err != nil {
		return types.Issue{}, fmt.Errorf("issue %s: %w", url, err)
	}

	issue := types.Issue{
		ID:        res.ID,
		CreatedAt: createdAt,
		Title:     res.Title,
		URL:       res.URL,
	}
	if err := issue.Validate(); err != nil {
		return types.Issue{}, fmt.Errorf("%w: incomplete issue payload for %s: %v", ErrRemote, url, err)
	}
	return issue, nil
}
