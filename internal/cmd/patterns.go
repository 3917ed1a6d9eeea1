package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/runger/redact/internal/config"
	"github.com/runger/redact/internal/scrub"
)

var (
	patternCategory        string
	patternPriority        int
	patternHints           []string
	patternCaseInsensitive bool
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage detection patterns",
	Long: `Manage the detection patterns used by 'redact scrub'.

Custom patterns are stored in the config file and loaded on every run,
on top of the built-in rules. A custom pattern with the same name as a
built-in rule replaces it.`,
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active patterns in application order",
	RunE:  runPatternsList,
}

var patternsAddCmd = &cobra.Command{
	Use:   "add <name> <regex> <replacement>",
	Short: "Add a custom pattern",
	Long: `Add a custom detection pattern and persist it to the config file.

Examples:
  redact patterns add employee_id 'EMP-\d{6}' '[EMPLOYEE_ID]'
  redact patterns add badge 'BADGE-[0-9]{4}' '[BADGE]' --priority 20 --hint BADGE-`,
	Args: cobra.ExactArgs(3),
	RunE: runPatternsAdd,
}

var patternsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a custom pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsRemove,
}

var patternsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all custom patterns",
	RunE:  runPatternsReset,
}

func init() {
	patternsAddCmd.Flags().StringVar(&patternCategory, "category", "custom", "Pattern category")
	patternsAddCmd.Flags().IntVar(&patternPriority, "priority", 90, "Application priority (lower runs first)")
	patternsAddCmd.Flags().StringSliceVar(&patternHints, "hint", nil, "Literal substring that must be present for the regex to run")
	patternsAddCmd.Flags().BoolVar(&patternCaseInsensitive, "case-insensitive", false, "Match hints case-insensitively")

	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsAddCmd)
	patternsCmd.AddCommand(patternsRemoveCmd)
	patternsCmd.AddCommand(patternsResetCmd)
	rootCmd.AddCommand(patternsCmd)
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, err := newScrubber(cfg)
	if err != nil {
		return err
	}

	custom := make(map[string]bool, len(cfg.Scrub.Patterns))
	for _, def := range cfg.Scrub.Patterns {
		custom[def.Name] = true
	}

	out := cmd.OutOrStdout()
	for _, p := range s.ListPatterns() {
		marker := " "
		if custom[p.Name] {
			marker = "*"
		}
		fmt.Fprintf(out, "%s%3d%s %s %s%-28s%s %s%s%s\n",
			colorDim, p.Priority, colorReset,
			marker,
			colorBold, p.Name, colorReset,
			colorCyan, p.Category, colorReset)
	}
	fmt.Fprintf(out, "\n%d patterns (* custom)\n", s.PatternCount())
	return nil
}

func runPatternsAdd(cmd *cobra.Command, args []string) error {
	name, expr, replacement := args[0], args[1], args[2]

	// Fail fast on a bad regex before touching the config file.
	if _, err := regexp.Compile(expr); err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	known := false
	for _, cat := range scrub.Categories() {
		if string(cat) == patternCategory {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q", patternCategory)
	}

	path := config.DefaultPaths().ConfigFile()
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}

	def := config.PatternDef{
		Name:            name,
		Pattern:         expr,
		Replacement:     replacement,
		Category:        patternCategory,
		Priority:        patternPriority,
		CaseInsensitive: patternCaseInsensitive,
		Hints:           patternHints,
	}

	replaced := false
	for i, existing := range cfg.Scrub.Patterns {
		if existing.Name == name {
			cfg.Scrub.Patterns[i] = def
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Scrub.Patterns = append(cfg.Scrub.Patterns, def)
	}

	if err := cfg.SaveToFile(path); err != nil {
		return err
	}
	verb := "Added"
	if replaced {
		verb = "Updated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s pattern %q (priority %d)\n",
		colorGreen, verb, colorReset, name, patternPriority)
	return nil
}

func runPatternsRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	path := config.DefaultPaths().ConfigFile()
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}

	kept := cfg.Scrub.Patterns[:0]
	found := false
	for _, def := range cfg.Scrub.Patterns {
		if def.Name == name {
			found = true
			continue
		}
		kept = append(kept, def)
	}
	if !found {
		return fmt.Errorf("no custom pattern named %q", name)
	}
	cfg.Scrub.Patterns = kept

	if err := cfg.SaveToFile(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sRemoved%s pattern %q\n", colorGreen, colorReset, name)
	return nil
}

func runPatternsReset(cmd *cobra.Command, args []string) error {
	path := config.DefaultPaths().ConfigFile()
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}

	n := len(cfg.Scrub.Patterns)
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No custom patterns configured")
		return nil
	}
	cfg.Scrub.Patterns = nil

	if err := cfg.SaveToFile(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sRemoved%s %d custom pattern(s); built-ins restored\n",
		colorGreen, colorReset, n)
	return nil
}
