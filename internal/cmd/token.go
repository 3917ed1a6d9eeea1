package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/redact/internal/config"
	"github.com/runger/redact/internal/tokens"
)

var tokenScope string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage rotating access tokens",
	Long: `Manage the local store of rotating access tokens.

Token values carry the tok_ prefix, which the scrub engine's built-in
rules redact. Tokens expire after the configured rotation period and must
be rotated to stay valid.`,
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Issue a new token",
	RunE:  runTokenGenerate,
}

var tokenRotateCmd = &cobra.Command{
	Use:   "rotate <id>",
	Short: "Rotate a token's value",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRotate,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Revoke a token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

var tokenCheckCmd = &cobra.Command{
	Use:   "check <value>",
	Short: "Check whether a token value is still valid",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenCheck,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tokens (values hidden)",
	RunE:  runTokenList,
}

func init() {
	tokenGenerateCmd.Flags().StringVar(&tokenScope, "scope", "", "Scope label for the token")

	tokenCmd.AddCommand(tokenGenerateCmd)
	tokenCmd.AddCommand(tokenRotateCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	tokenCmd.AddCommand(tokenCheckCmd)
	tokenCmd.AddCommand(tokenListCmd)
	rootCmd.AddCommand(tokenCmd)
}

// openTokenStore opens the persisted token store using the config file's
// settings, including the configured log level and file. The caller must
// invoke the returned cleanup once done.
func openTokenStore(cmd *cobra.Command) (*tokens.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeLog := func() {
		if logCloser != nil {
			logCloser.Close()
		}
	}

	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		closeLog()
		return nil, nil, err
	}
	dbPath := cfg.Tokens.DatabasePath
	if dbPath == "" {
		dbPath = paths.TokenDatabaseFile()
	}

	persist, err := tokens.OpenSQLite(dbPath)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		persist.Close()
		closeLog()
	}

	storeCfg := tokens.Config{
		RotationPeriod: time.Duration(cfg.Tokens.RotationPeriodMins) * time.Minute,
		MaxTokens:      cfg.Tokens.MaxTokens,
	}
	store := tokens.NewStore(storeCfg, persist, logger)
	if err := store.Open(cmd.Context()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

func runTokenGenerate(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openTokenStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := store.Generate(cmd.Context(), tokenScope)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%sid:%s    %s\n", colorDim, colorReset, t.ID)
	// The value is shown exactly once, at issue time.
	fmt.Fprintf(out, "%svalue:%s %s\n", colorDim, colorReset, t.Value)
	if t.Scope != "" {
		fmt.Fprintf(out, "%sscope:%s %s\n", colorDim, colorReset, t.Scope)
	}
	return nil
}

func runTokenRotate(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openTokenStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := store.Rotate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sRotated%s %s\n", colorGreen, colorReset, t.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "%svalue:%s %s\n", colorDim, colorReset, t.Value)
	return nil
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openTokenStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.Revoke(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%sRevoked%s %s\n", colorGreen, colorReset, args[0])
	return nil
}

func runTokenCheck(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openTokenStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if !store.IsValid(args[0]) {
		return fmt.Errorf("token is invalid, expired or revoked")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%svalid%s\n", colorGreen, colorReset)
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openTokenStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	toks := store.List()
	if len(toks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tokens")
		return nil
	}
	out := cmd.OutOrStdout()
	for _, t := range toks {
		status := colorGreen + "active " + colorReset
		if t.Revoked {
			status = colorRed + "revoked" + colorReset
		}
		scope := t.Scope
		if scope == "" {
			scope = "-"
		}
		fmt.Fprintf(out, "%s  %s  %s%s%s  rotated %s\n",
			t.ID, status, colorCyan, scope, colorReset,
			t.RotatedAt.Format(time.RFC3339))
	}
	return nil
}
