package tracker

import (
	"time"
)

// RunStats tracks counts for one run over an input list.
type RunStats struct {
	Checked int `json:"checked"` // Issues resolved and evaluated
	Expired int `json:"expired"` // Issues whose title date has passed
	Closed  int `json:"closed"`  // Issues closed (zero on dry runs)
	Skipped int `json:"skipped"` // Blank input entries
}

// ItemResult records what happened to one issue.
type ItemResult struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Expression string     `json:"expression,omitempty"` // First date expression in the title
	Deadline   *time.Time `json:"deadline,omitempty"`   // Instant compared against now
	Expired    bool       `json:"expired"`
	Closed     bool       `json:"closed"`
}

// RunResult is the outcome of a complete run.
type RunResult struct {
	Success bool         `json:"success"`
	DryRun  bool         `json:"dry_run,omitempty"`
	Stats   RunStats     `json:"stats"`
	Items   []ItemResult `json:"items,omitempty"`
	Error   string       `json:"error,omitempty"` // Message of the error that stopped the run
}
