package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expire-issues/expire-issues/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show effective configuration",
	Long: `Show the configuration a run would use, merged from defaults, the config
file (.expire-issues.yaml or ~/.config/expire-issues/config.yaml),
EXPIRE_ISSUES_* environment variables and flags. The token is redacted.
With a key (e.g. github.timeout) only that value is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			val, err := config.Value(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				outputJSON(cmd.OutOrStdout(), map[string]interface{}{args[0]: val})
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		}
		if jsonOutput {
			outputJSON(cmd.OutOrStdout(), config.AllSettings())
			return nil
		}
		out, err := config.DumpYAML()
		if err != nil {
			return err
		}
		if path := config.ConfigFileUsed(); path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
