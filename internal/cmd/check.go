package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/redact/internal/scrub"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check text for residual sensitive data",
	Long: `Check a file or stdin for sensitive data that survived scrubbing.

The check runs an independent set of detectors, not the scrub patterns, so
a misconfigured registry cannot hide a leak from it. A finding exits with
status 1, which makes the command a usable CI gate:

  redact scrub app.log | redact check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}

	result := scrub.Validate(string(data))
	if result.Clean {
		fmt.Fprintf(cmd.OutOrStdout(), "%sclean:%s no sensitive data detected\n", colorGreen, colorReset)
		return nil
	}

	for _, name := range result.Residual {
		fmt.Fprintf(cmd.ErrOrStderr(), "%sleak:%s %s\n", colorRed, colorReset, name)
	}
	return fmt.Errorf("%d residual finding(s)", len(result.Residual))
}
