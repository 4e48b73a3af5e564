package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/expire-issues/expire-issues/internal/debug"
	"github.com/expire-issues/expire-issues/internal/tracker"
	"github.com/expire-issues/expire-issues/internal/ui"
)

// outputJSON writes v as pretty-printed JSON.
func outputJSON(w io.Writer, v interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printResult writes one line per checked issue and a summary line.
// Nothing is printed in quiet mode.
func printResult(w io.Writer, result *tracker.RunResult) {
	if result == nil || debug.IsQuiet() {
		return
	}

	for _, item := range result.Items {
		line := fmt.Sprintf("%s %s %s", itemIcon(item, result.DryRun), item.URL,
			ui.RenderMuted(ui.TruncateTitle(item.Title, ui.DefaultTitleWidth)))
		if item.Expression != "" {
			line += " [" + ui.RenderAccent(item.Expression) + "]"
		}
		fmt.Fprintln(w, line)
	}

	s := result.Stats
	verb := "closed"
	closed := s.Closed
	if result.DryRun {
		verb = "would close"
		closed = s.Expired
	}
	summary := fmt.Sprintf("%d checked, %d expired, %d %s", s.Checked, s.Expired, closed, verb)
	if s.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	if !result.Success {
		fmt.Fprintf(w, "%s %s\n", ui.RenderFailIcon(), ui.RenderFail(summary))
		return
	}
	fmt.Fprintln(w, ui.RenderPass(summary))
}

func itemIcon(item tracker.ItemResult, dryRun bool) string {
	switch {
	case item.Closed:
		return ui.RenderClosedIcon()
	case item.Expired && dryRun:
		return ui.RenderDryRunIcon()
	case item.Expired:
		return ui.RenderFailIcon()
	default:
		return ui.RenderPendingIcon()
	}
}
