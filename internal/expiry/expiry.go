// Package expiry decides whether an issue has expired from the dates in its title.
//
// Only the first date expression in a title counts. A range expires once
// its end has passed; a single date expires once it has passed. Both
// comparisons are strict, so an instant equal to now is not expired.
package expiry

import (
	"time"

	"github.com/expire-issues/expire-issues/internal/timeparsing"
)

// Extractor finds date expressions in text, anchoring partial dates to ref.
type Extractor interface {
	Extract(text string, ref time.Time) []timeparsing.Expression
}

// Verdict is the outcome of evaluating one title.
type Verdict struct {
	Expired    bool
	Expression *timeparsing.Expression // First expression found, nil if none
	Deadline   time.Time               // Instant compared against now; zero if none
}

// Evaluator applies the expiration policy using its Extractor.
type Evaluator struct {
	Extractor Extractor
}

// NewEvaluator returns an evaluator backed by the default date parser.
func NewEvaluator() *Evaluator {
	return &Evaluator{Extractor: timeparsing.NewParser()}
}

// Evaluate extracts the first expression from title, anchored at createdAt,
// and compares it with now. A zero now means the current time.
func (e *Evaluator) Evaluate(title string, createdAt, now time.Time) Verdict {
	if now.IsZero() {
		now = time.Now()
	}

	exprs := e.Extractor.Extract(title, createdAt)
	if len(exprs) == 0 {
		return Verdict{}
	}

	first := exprs[0]
	v := Verdict{Expression: &first}
	switch {
	case first.IsRange():
		v.Deadline = *first.End
	case first.Start != nil:
		v.Deadline = *first.Start
	default:
		return v
	}
	v.Expired = v.Deadline.Before(now)
	return v
}

// IsExpired reports whether title names a date or range that ended before now.
func (e *Evaluator) IsExpired(title string, createdAt, now time.Time) bool {
	return e.Evaluate(title, createdAt, now).Expired
}

var defaultEvaluator = NewEvaluator()

// IsExpired evaluates title with the default date parser.
func IsExpired(title string, createdAt, now time.Time) bool {
	return defaultEvaluator.IsExpired(title, createdAt, now)
}
