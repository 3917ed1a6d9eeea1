package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/runger/redact/internal/config"
	"github.com/runger/redact/internal/homoglyph"
	"github.com/runger/redact/internal/scrub"
)

var (
	scrubJSON      bool
	scrubScope     []string
	scrubShowStats bool
	scrubNoVerify  bool
)

var scrubCmd = &cobra.Command{
	Use:   "scrub [file]",
	Short: "Scrub sensitive data from a file or stdin",
	Long: `Scrub sensitive data from a file or stdin and write the result to stdout.

By default every pattern category is applied and the output is verified for
residual leakage; residual findings fail the command so nothing sensitive
slips through a pipeline by accident.

Examples:
  tail -n 100 app.log | redact scrub
  redact scrub --json telemetry.json
  redact scrub --scope auth,secrets notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrub,
}

func init() {
	scrubCmd.Flags().BoolVar(&scrubJSON, "json", false, "Treat input as JSON and scrub it recursively")
	scrubCmd.Flags().StringSliceVar(&scrubScope, "scope", nil, "Only scrub the given categories (default: all)")
	scrubCmd.Flags().BoolVar(&scrubShowStats, "stats", false, "Print redaction statistics to stderr")
	scrubCmd.Flags().BoolVar(&scrubNoVerify, "no-verify", false, "Skip residual leakage verification")

	rootCmd.AddCommand(scrubCmd)
}

// readInput reads the positional file argument, or stdin for "-" or no
// argument.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// newScrubber builds a scrubber from the config file's custom patterns.
func newScrubber(cfg *config.Config) (*scrub.Scrubber, error) {
	s := scrub.New()
	if err := cfg.ApplyPatterns(s); err != nil {
		return nil, err
	}
	return s, nil
}

func runScrub(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, err := newScrubber(cfg)
	if err != nil {
		return err
	}

	data, err := readInput(args)
	if err != nil {
		return err
	}
	input := string(data)

	scope := scrubScope
	if len(scope) == 0 {
		scope = cfg.Scrub.Scope
	}

	var out string
	switch {
	case scrubJSON:
		out, err = scrubJSONDocument(s, scope, data)
		if err != nil {
			return err
		}
	case len(scope) > 0:
		cats := make([]scrub.Category, len(scope))
		for i, c := range scope {
			cats[i] = scrub.Category(c)
		}
		out = s.Scoped(cats...).Scrub(input)
	default:
		out = s.Scrub(input)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)

	if cfg.Homoglyph.Enabled {
		if findings := homoglyph.Detect(out); len(findings) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%swarning:%s %d confusable character(s) in output; see 'redact homoglyph'\n",
				colorYellow, colorReset, len(findings))
		}
	}

	if scrubShowStats {
		printStats(cmd.ErrOrStderr(), s.Stats())
	}

	// Scoped runs deliberately leave out-of-scope categories behind, so
	// verification applies only to full scrubs.
	if !scrubNoVerify && cfg.Scrub.Validate && len(scope) == 0 && !scrubJSON {
		if v := scrub.Validate(out); !v.Clean {
			return fmt.Errorf("residual sensitive data after scrub: %v", v.Residual)
		}
	}
	return nil
}

// scrubJSONDocument recursively scrubs a decoded JSON document.
func scrubJSONDocument(s *scrub.Scrubber, scope []string, data []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("invalid JSON input: %w", err)
	}
	if len(scope) > 0 {
		return "", fmt.Errorf("--scope is not supported with --json")
	}
	cleaned := s.ScrubValue(doc)
	out, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

func printStats(w io.Writer, snap scrub.StatsSnapshot) {
	fmt.Fprintf(w, "%sredactions:%s %d (patterns active: %d)\n",
		colorBold, colorReset, snap.TotalScrubs, snap.PatternCount)

	cats := make([]string, 0, len(snap.ByCategory))
	for c := range snap.ByCategory {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Fprintf(w, "  %s%-12s%s %d\n", colorCyan, c, colorReset, snap.ByCategory[scrub.Category(c)])
	}
}
