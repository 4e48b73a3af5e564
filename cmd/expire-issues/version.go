package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.Version=... -X main.Build=... -X main.Commit=...".
var (
	Version = "0.1.0"
	Build   = "dev"
	Commit  = ""
)

// versionInfo is what `expire-issues version` reports.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit,omitempty"`
	Dirty   bool   `json:"dirty,omitempty"`
	Go      string `json:"go"`
}

// currentVersion fills in the commit from the linker flag, falling back to
// the VCS stamp the go command embeds.
func currentVersion() versionInfo {
	info := versionInfo{Version: Version, Build: Build, Commit: Commit, Go: runtime.Version()}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// String renders e.g. "0.1.0 (dev: 280fbcf9a253)", "0.1.0 (dev: 280fbcf9a253+dirty)" or "0.1.0 (release)".
func (v versionInfo) String() string {
	if v.Commit == "" {
		return fmt.Sprintf("%s (%s)", v.Version, v.Build)
	}
	commit := v.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if v.Dirty {
		commit += "+dirty"
	}
	return fmt.Sprintf("%s (%s: %s)", v.Version, v.Build, commit)
}

// FullVersionString is the version line printed by --version.
func FullVersionString() string {
	return currentVersion().String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := currentVersion()
		if jsonOutput {
			outputJSON(cmd.OutOrStdout(), info)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "expire-issues version %s\n", info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
