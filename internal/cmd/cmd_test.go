package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runger/redact/internal/config"
	"github.com/runger/redact/internal/scrub"
)

func TestScrubCmd_Args(t *testing.T) {
	if err := scrubCmd.Args(scrubCmd, []string{}); err != nil {
		t.Errorf("scrub should accept stdin mode with no args, got error: %v", err)
	}
	if err := scrubCmd.Args(scrubCmd, []string{"app.log"}); err != nil {
		t.Errorf("scrub should accept 1 argument, got error: %v", err)
	}
	if err := scrubCmd.Args(scrubCmd, []string{"a", "b"}); err == nil {
		t.Error("scrub should reject more than 1 argument")
	}
}

func TestPatternsAddCmd_Args(t *testing.T) {
	if err := patternsAddCmd.Args(patternsAddCmd, []string{"name", `\d+`, "[N]"}); err != nil {
		t.Errorf("patterns add should accept 3 arguments, got error: %v", err)
	}
	if err := patternsAddCmd.Args(patternsAddCmd, []string{"name", `\d+`}); err == nil {
		t.Error("patterns add should require exactly 3 arguments")
	}
}

func TestTokenCmd_Args(t *testing.T) {
	if err := tokenRotateCmd.Args(tokenRotateCmd, []string{}); err == nil {
		t.Error("token rotate should require an id")
	}
	if err := tokenRevokeCmd.Args(tokenRevokeCmd, []string{"abc"}); err != nil {
		t.Errorf("token revoke should accept 1 argument, got error: %v", err)
	}
	if err := tokenCheckCmd.Args(tokenCheckCmd, []string{"tok_x", "tok_y"}); err == nil {
		t.Error("token check should reject more than 1 argument")
	}
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := readInput([]string{path})
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("readInput = %q, want %q", data, "hello")
	}

	if _, err := readInput([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("readInput should fail for a missing file")
	}
}

func TestScrubJSONDocument(t *testing.T) {
	s := scrub.New()

	doc := `{"user": "alice@example.com", "note": "safe", "keys": ["sk-abcdefghij1234567890abcd"]}`
	out, err := scrubJSONDocument(s, nil, []byte(doc))
	if err != nil {
		t.Fatalf("scrubJSONDocument: %v", err)
	}
	if strings.Contains(out, "alice@example.com") {
		t.Error("email should be redacted in JSON output")
	}
	if strings.Contains(out, "sk-abcdefghij1234567890abcd") {
		t.Error("API key should be redacted in JSON output")
	}
	if !strings.Contains(out, `"safe"`) {
		t.Error("safe values should survive unchanged")
	}
}

func TestScrubJSONDocument_InvalidJSON(t *testing.T) {
	s := scrub.New()
	if _, err := scrubJSONDocument(s, nil, []byte("{not json")); err == nil {
		t.Error("invalid JSON should be rejected")
	}
}

func TestScrubJSONDocument_RejectsScope(t *testing.T) {
	s := scrub.New()
	if _, err := scrubJSONDocument(s, []string{"auth"}, []byte(`{}`)); err == nil {
		t.Error("--scope with --json should be rejected")
	}
}

func TestNewScrubber_AppliesConfigPatterns(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scrub.Patterns = []config.PatternDef{
		{Name: "employee_id", Pattern: `EMP-\d{6}`, Replacement: "[EMPLOYEE_ID]"},
	}

	s, err := newScrubber(cfg)
	if err != nil {
		t.Fatalf("newScrubber: %v", err)
	}
	got := s.Scrub("badge EMP-123456 checked in")
	if !strings.Contains(got, "[EMPLOYEE_ID]") {
		t.Errorf("custom pattern not applied: %q", got)
	}
}

func TestNewScrubber_RejectsBadPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scrub.Patterns = []config.PatternDef{
		{Name: "broken", Pattern: "(", Replacement: "[X]"},
	}
	if _, err := newScrubber(cfg); err == nil {
		t.Error("invalid regex in config should surface as an error")
	}
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()

	clean := filepath.Join(dir, "clean.txt")
	if err := os.WriteFile(clean, []byte("deploy finished, 3 warnings\n"), 0644); err != nil {
		t.Fatal(err)
	}
	leaky := filepath.Join(dir, "leaky.txt")
	if err := os.WriteFile(leaky, []byte("contact alice@example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	checkCmd.SetOut(&out)
	checkCmd.SetErr(&errOut)

	if err := runCheck(checkCmd, []string{clean}); err != nil {
		t.Errorf("clean file should pass, got error: %v", err)
	}
	if !strings.Contains(out.String(), "clean:") {
		t.Errorf("clean output missing marker: %q", out.String())
	}

	if err := runCheck(checkCmd, []string{leaky}); err == nil {
		t.Error("leaky file should fail the check")
	}
	if !strings.Contains(errOut.String(), "email") {
		t.Errorf("leak report should name the detector: %q", errOut.String())
	}
}

func TestNewLoggerUsesConfiguredLevelAndFile(t *testing.T) {
	t.Setenv("REDACT_DEBUG", "")
	path := filepath.Join(t.TempDir(), "redact.log")

	cfg := config.DefaultConfig()
	cfg.Log.Level = "debug"
	cfg.Log.File = path

	logger, closer, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if closer == nil {
		t.Fatal("log file configured but no closer returned")
	}
	logger.Debug("rotation check", "tokens", 2)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "rotation check") {
		t.Errorf("debug record missing from log file: %q", data)
	}
	if !strings.Contains(string(data), `"level":"DEBUG"`) {
		t.Errorf("log record missing level: %q", data)
	}
}

func TestNewLoggerFiltersBelowConfiguredLevel(t *testing.T) {
	t.Setenv("REDACT_DEBUG", "")
	path := filepath.Join(t.TempDir(), "redact.log")

	cfg := config.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Log.File = path

	logger, closer, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("below threshold")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("info record written despite error level: %q", data)
	}
}

func TestNewLoggerDebugEnvOverride(t *testing.T) {
	t.Setenv("REDACT_DEBUG", "1")
	path := filepath.Join(t.TempDir(), "redact.log")

	cfg := config.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Log.File = path

	logger, closer, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("forced on")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "forced on") {
		t.Errorf("REDACT_DEBUG=1 did not override the configured level: %q", data)
	}
}

func TestRunHomoglyph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	// The "а" is Cyrillic U+0430.
	if err := os.WriteFile(path, []byte("pаypal.com"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	homoglyphCmd.SetOut(&out)

	if err := runHomoglyph(homoglyphCmd, []string{path}); err == nil {
		t.Error("confusable input should fail the report")
	}
	if !strings.Contains(out.String(), "U+0430") {
		t.Errorf("report should name the code point: %q", out.String())
	}

	homoglyphNormalize = true
	defer func() { homoglyphNormalize = false }()
	out.Reset()
	if err := runHomoglyph(homoglyphCmd, []string{path}); err != nil {
		t.Errorf("normalize mode should succeed, got error: %v", err)
	}
	if out.String() != "paypal.com" {
		t.Errorf("normalized output = %q, want %q", out.String(), "paypal.com")
	}
}

func TestPrintStats(t *testing.T) {
	s := scrub.New()
	s.Scrub("key = sk-abcdefghij1234567890abcd and bob@example.com")

	var buf bytes.Buffer
	printStats(&buf, s.Stats())

	got := buf.String()
	if !strings.Contains(got, "redactions:") {
		t.Errorf("stats output missing total: %q", got)
	}
	if !strings.Contains(got, "auth") || !strings.Contains(got, "personal") {
		t.Errorf("stats output missing categories: %q", got)
	}
}
