package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/expire-issues/expire-issues/internal/expiry"
	"github.com/expire-issues/expire-issues/internal/validation"
)

// Engine runs the resolve → evaluate → close cycle over a list of issue URLs.
// Items are processed one at a time in input order; the first error stops
// the run.
type Engine struct {
	Remote    Remote
	Evaluator *expiry.Evaluator
	DryRun    bool // Evaluate but never close

	// Now returns the instant each issue is evaluated against.
	// Defaults to time.Now.
	Now func() time.Time

	// Callbacks for UI feedback (optional).
	OnMessage func(msg string)
	OnWarning func(msg string)
}

// NewEngine creates an engine that closes expired issues through remote.
func NewEngine(remote Remote) *Engine {
	return &Engine{
		Remote:    remote,
		Evaluator: expiry.NewEvaluator(),
		Now:       time.Now,
	}
}

// Run processes every URL in order. On failure the returned result holds
// the stats gathered so far along with the error message.
func (e *Engine) Run(ctx context.Context, urls []string) (*RunResult, error) {
	result := &RunResult{Success: true, DryRun: e.DryRun}

	for _, raw := range urls {
		if err := ctx.Err(); err != nil {
			return e.fail(result, err)
		}

		url := strings.TrimSpace(raw)
		if url == "" {
			result.Stats.Skipped++
			continue
		}

		item, err := e.process(ctx, url)
		if item != nil {
			result.Items = append(result.Items, *item)
			result.Stats.Checked++
			if item.Expired {
				result.Stats.Expired++
			}
			if item.Closed {
				result.Stats.Closed++
			}
		}
		if err != nil {
			return e.fail(result, err)
		}
	}

	return result, nil
}

// process handles a single URL. It returns a non-nil item once the issue
// has been resolved, even when closing it fails.
func (e *Engine) process(ctx context.Context, url string) (*ItemResult, error) {
	if _, err := validation.ParseIssueURL(url); err != nil {
		// Still queried: the API decides what a URL points to.
		e.warn("%v", err)
	}

	issue, err := Resolve(ctx, e.Remote, url)
	if err != nil {
		return nil, err
	}
	if issue.URL != url {
		// Transferred issues and renamed repositories redirect.
		e.warn("%s resolved to %s", url, issue.URL)
	}

	verdict := e.evaluator().Evaluate(issue.Title, issue.CreatedAt, e.now())
	item := &ItemResult{
		URL:     issue.URL,
		Title:   issue.Title,
		Expired: verdict.Expired,
	}
	if verdict.Expression != nil {
		item.Expression = verdict.Expression.Text
		if !verdict.Deadline.IsZero() {
			deadline := verdict.Deadline
			item.Deadline = &deadline
		}
	}

	if !verdict.Expired {
		switch {
		case verdict.Expression == nil:
			e.msg("%s: no date in title %q", issue, issue.Title)
		case verdict.Expression.IsRange():
			e.msg("%s: %q has not ended", issue, verdict.Expression.Text)
		default:
			e.msg("%s: %q has not passed", issue, verdict.Expression.Text)
		}
		return item, nil
	}

	if e.DryRun {
		e.msg("[dry-run] Would close %s (%q passed)", issue, verdict.Expression.Text)
		return item, nil
	}

	if err := Close(ctx, e.Remote, issue); err != nil {
		return item, err
	}
	item.Closed = true
	e.msg("Closed %s (%q passed)", issue, verdict.Expression.Text)
	return item, nil
}

func (e *Engine) fail(result *RunResult, err error) (*RunResult, error) {
	result.Success = false
	result.Error = err.Error()
	return result, err
}

func (e *Engine) evaluator() *expiry.Evaluator {
	if e.Evaluator == nil {
		e.Evaluator = expiry.NewEvaluator()
	}
	return e.Evaluator
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) msg(format string, args ...interface{}) {
	if e.OnMessage != nil {
		e.OnMessage(fmt.Sprintf(format, args...))
	}
}

func (e *Engine) warn(format string, args ...interface{}) {
	if e.OnWarning != nil {
		e.OnWarning(fmt.Sprintf(format, args...))
	}
}
