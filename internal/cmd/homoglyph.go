package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/redact/internal/homoglyph"
)

var homoglyphNormalize bool

var homoglyphCmd = &cobra.Command{
	Use:   "homoglyph [file]",
	Short: "Detect confusable characters in text",
	Long: `Detect Unicode homoglyphs in a file or stdin.

Homoglyphs are non-Latin characters that render like Latin ones, commonly
used to sneak lookalike domains or identifiers past reviewers. With
--normalize the text is rewritten with Latin equivalents and printed to
stdout instead of a report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHomoglyph,
}

func init() {
	homoglyphCmd.Flags().BoolVar(&homoglyphNormalize, "normalize", false, "Replace confusables with Latin equivalents and print the result")

	rootCmd.AddCommand(homoglyphCmd)
}

func runHomoglyph(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	text := string(data)

	if homoglyphNormalize {
		fmt.Fprint(cmd.OutOrStdout(), homoglyph.Normalize(text))
		return nil
	}

	out := cmd.OutOrStdout()
	findings := homoglyph.Detect(text)
	if len(findings) == 0 {
		fmt.Fprintf(out, "%sclean:%s no confusable characters found\n", colorGreen, colorReset)
		return nil
	}

	for _, f := range findings {
		fmt.Fprintf(out, "%s%-8s%s %q looks like %q  %s(%s, rune %d)%s\n",
			colorYellow, f.CodePoint, colorReset,
			f.Char, f.Latin,
			colorDim, f.Script, f.Index, colorReset)
	}

	mixed := homoglyph.CheckMixedScript(text)
	if mixed.Mixed {
		fmt.Fprintf(out, "\n%smixed scripts:%s %v\n", colorRed, colorReset, mixed.Scripts)
	}
	return fmt.Errorf("%d confusable character(s)", len(findings))
}
