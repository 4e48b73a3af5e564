// Command expire-issues closes GitHub issues whose title date has passed.
//
// It reads a newline-delimited list of issue URLs (default
// .github/expires.txt), finds the first date or date range in each title,
// and closes the issue once that date is behind it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/expire-issues/expire-issues/internal/config"
	"github.com/expire-issues/expire-issues/internal/debug"
	"github.com/expire-issues/expire-issues/internal/telemetry"
	"github.com/expire-issues/expire-issues/internal/ui"
)

var (
	jsonOutput  bool
	verboseFlag bool // Enable verbose/debug output
	quietFlag   bool // Suppress non-essential output

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

func init() {
	if err := config.Initialize(); err != nil {
		debug.Warnf("failed to initialize config: %v", err)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("path", "p", config.DefaultPath, "File listing the issue URLs to check, one per line")
	flags.String("token", "", "GitHub token (default: $EXPIRE_ISSUES_GITHUB_TOKEN, $GITHUB_TOKEN)")
	flags.String("endpoint", "", "GraphQL endpoint (for GitHub Enterprise)")
	flags.String("now", "", "Evaluate as of this time instead of the clock (e.g. 2020-02-01, +1d, \"next monday\")")
	flags.Bool("dry-run", false, "Report what would be closed without closing anything")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	bindFlag(config.KeyPath, "path")
	bindFlag(config.KeyGitHubToken, "token")
	bindFlag(config.KeyGitHubEndpoint, "endpoint")
	bindFlag(config.KeyNow, "now")
	bindFlag(config.KeyDryRun, "dry-run")
	bindFlag(config.KeyJSON, "json")

	// Add --version flag to root command (same behavior as version subcommand)
	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

func bindFlag(key, name string) {
	if err := config.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		debug.Warnf("failed to bind --%s: %v", name, err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "expire-issues",
	Short: "expire-issues - Close GitHub issues once the date in their title has passed",
	Long: `Reads a list of GitHub issue URLs and closes every issue whose title names a
date (or date range) that is now in the past. Partial dates like "Jan 31" are
read relative to when the issue was opened.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		applyVerbosityFlags()
		ui.InitColor()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("expire-issues version %s\n", FullVersionString())
			return nil
		}
		return runExpire(rootCtx, optionsFromConfig(), os.Stdout)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rootCancel != nil {
			rootCancel()
		}
	},
}

func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
	jsonOutput = config.GetBool(config.KeyJSON)
}

func main() {
	if err := telemetry.Init(context.Background(), telemetrySettings(), Version); err != nil {
		debug.Warnf("%v", err)
	}

	err := rootCmd.Execute()
	if serr := telemetry.Shutdown(context.Background()); serr != nil {
		debug.Warnf("failed to flush telemetry: %v", serr)
	}
	if err != nil {
		FatalError(err)
	}
}

func telemetrySettings() telemetry.Settings {
	return telemetry.Settings{
		Enabled:  config.GetBool(config.KeyTelemetryEnabled),
		Stdout:   config.GetBool(config.KeyTelemetryStdout),
		Endpoint: config.GetString(config.KeyTelemetryEndpoint),
	}
}
