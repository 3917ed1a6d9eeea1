// Package config loads the redact configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runger/redact/internal/scrub"
)

// Config represents the redact configuration.
type Config struct {
	Scrub     ScrubConfig     `yaml:"scrub"`
	Homoglyph HomoglyphConfig `yaml:"homoglyph"`
	Tokens    TokensConfig    `yaml:"tokens"`
	Log       LogConfig       `yaml:"log"`
}

// ScrubConfig holds engine-related settings.
type ScrubConfig struct {
	Scope    []string     `yaml:"scope"`    // Category names to scrub (empty = all)
	Validate bool         `yaml:"validate"` // Run residual validation after scrubbing
	Patterns []PatternDef `yaml:"patterns"` // Custom detection rules
}

// PatternDef is a custom detection rule as written in the config file.
type PatternDef struct {
	Name            string   `yaml:"name"`
	Pattern         string   `yaml:"pattern"`
	Replacement     string   `yaml:"replacement"` // Empty deletes the match
	Category        string   `yaml:"category"`         // Defaults to "custom"
	Priority        int      `yaml:"priority"`         // Defaults to 90
	CaseInsensitive bool     `yaml:"case_insensitive"` // Pattern must carry its own (?i)
	Hints           []string `yaml:"hints"`
}

// HomoglyphConfig holds homoglyph detector settings.
type HomoglyphConfig struct {
	Enabled bool `yaml:"enabled"` // Flag confusable characters during scrub runs
}

// TokensConfig holds token store settings.
type TokensConfig struct {
	RotationPeriodMins int    `yaml:"rotation_period_mins"` // Token value lifetime
	MaxTokens          int    `yaml:"max_tokens"`           // Eviction bound
	DatabasePath       string `yaml:"database_path"`        // SQLite path (empty = default)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (empty = stderr)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scrub: ScrubConfig{
			Scope:    nil, // all categories
			Validate: true,
		},
		Homoglyph: HomoglyphConfig{
			Enabled: true,
		},
		Tokens: TokensConfig{
			RotationPeriodMins: 60,
			MaxTokens:          64,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Tokens.RotationPeriodMins < 0 {
		return fmt.Errorf("rotation_period_mins must be >= 0")
	}
	if c.Tokens.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0")
	}

	known := map[string]bool{}
	for _, cat := range scrub.Categories() {
		known[string(cat)] = true
	}
	for _, scope := range c.Scrub.Scope {
		if !known[scope] {
			return fmt.Errorf("unknown scrub category %q", scope)
		}
	}

	for _, p := range c.Scrub.Patterns {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("custom pattern with empty name")
		}
		if p.Pattern == "" {
			return fmt.Errorf("custom pattern %q has no pattern", p.Name)
		}
	}
	return nil
}

// ScopeCategories converts the configured scope to category values.
func (c *Config) ScopeCategories() []scrub.Category {
	out := make([]scrub.Category, len(c.Scrub.Scope))
	for i, s := range c.Scrub.Scope {
		out[i] = scrub.Category(s)
	}
	return out
}

// ApplyPatterns registers the configured custom patterns on the scrubber.
// The first rejected pattern aborts with its reason; earlier ones stay
// registered.
func (c *Config) ApplyPatterns(s *scrub.Scrubber) error {
	for _, def := range c.Scrub.Patterns {
		opts := []scrub.PatternOption{}
		if def.Category != "" {
			opts = append(opts, scrub.WithCategory(scrub.Category(def.Category)))
		}
		if def.Priority != 0 {
			opts = append(opts, scrub.WithPriority(def.Priority))
		}
		if len(def.Hints) > 0 {
			opts = append(opts, scrub.WithHints(def.Hints...))
		}
		if def.CaseInsensitive {
			opts = append(opts, scrub.CaseInsensitive())
		}
		res := s.AddPattern(def.Name, def.Pattern, def.Replacement, opts...)
		if !res.Added {
			return fmt.Errorf("pattern %q rejected: %w", def.Name, res.Err)
		}
	}
	return nil
}
