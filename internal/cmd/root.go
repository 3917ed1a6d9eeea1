package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "redact",
	Short: "scrub credentials and PII from text before it leaves the machine",
	Long: `redact - scrub credentials and PII from text before it leaves the machine
  - pipe logs, telemetry or prompts through 'redact scrub'
  - 'redact check' verifies nothing sensitive survived`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
