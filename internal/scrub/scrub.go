// Package scrub detects and redacts credentials and personally identifiable
// information from text before it leaves local storage.
//
// Detection rules are ordered by priority: structural secrets (private keys)
// run before keyed credentials, which run before generic secret assignments,
// network identifiers, personal data, and finally broad catch-alls like
// encoded blobs. The ordering matters because a broad late pattern could
// otherwise consume text that an earlier, more specific pattern should have
// replaced with a more informative token.
//
// Each rule may carry hint substrings: a cheap containment pre-check that
// skips the regex entirely when it cannot possibly match.
package scrub

import (
	"errors"
	"regexp"
	"strings"
)

// Category groups patterns for statistics and scoped scrubbing.
type Category string

const (
	CategoryCredentials Category = "credentials"
	CategoryAuth        Category = "auth"
	CategorySecrets     Category = "secrets"
	CategoryEnv         Category = "env"
	CategoryNetwork     Category = "network"
	CategoryPersonal    Category = "personal"
	CategoryIdentifiers Category = "identifiers"
	CategoryPaths       Category = "paths"
	CategoryGit         Category = "git"
	CategoryCode        Category = "code"
	CategoryCustom      Category = "custom"
)

// Categories returns every built-in category label.
func Categories() []Category {
	return []Category{
		CategoryCredentials, CategoryAuth, CategorySecrets, CategoryEnv,
		CategoryNetwork, CategoryPersonal, CategoryIdentifiers,
		CategoryPaths, CategoryGit, CategoryCode, CategoryCustom,
	}
}

// Pattern is a single detection rule. Patterns are treated as immutable once
// registered; replacing one means removing and re-adding under the same name.
type Pattern struct {
	Name        string
	Category    Category
	Regex       *regexp.Regexp
	Replacement string

	// Priority orders application: lower values run first. Ties are broken
	// by registration order.
	Priority int

	// CaseSensitive mirrors the regex's case handling so hint checks can
	// use the right copy of the text without introspecting the regex.
	CaseSensitive bool

	// Hints are literal substrings, at least one of which must occur in the
	// text for the regex to have any chance of matching. A hint must be a
	// true necessary condition; an approximate hint silently disables the
	// rule. nil means "always attempt the regex".
	Hints []string

	seq int // registration order, assigned by the Scrubber
}

// PatternInfo is the listing view of a registered pattern.
type PatternInfo struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Priority int      `json:"priority"`
}

// AddResult reports the outcome of AddPattern. Invalid input never panics;
// it produces Added=false with the reason in Err.
type AddResult struct {
	Added bool
	Err   error
}

var errEmptyName = errors.New("pattern name is required")

// PatternOption customizes a pattern added via AddPattern.
type PatternOption func(*Pattern)

// WithCategory sets the pattern's category (default: custom).
func WithCategory(c Category) PatternOption {
	return func(p *Pattern) { p.Category = c }
}

// WithPriority sets the pattern's priority (default: 90).
func WithPriority(n int) PatternOption {
	return func(p *Pattern) { p.Priority = n }
}

// WithHints sets hint substrings for the pattern.
func WithHints(hints ...string) PatternOption {
	return func(p *Pattern) { p.Hints = hints }
}

// CaseInsensitive marks the pattern as case-insensitive for hint checks.
// The regex itself must carry its own (?i) flag.
func CaseInsensitive() PatternOption {
	return func(p *Pattern) { p.CaseSensitive = false }
}

// normalizeHints lowercases hints for case-insensitive patterns so the hint
// check can run against a single lowercase copy of the text.
func normalizeHints(p *Pattern) {
	if p.CaseSensitive || len(p.Hints) == 0 {
		return
	}
	lowered := make([]string, len(p.Hints))
	for i, h := range p.Hints {
		lowered[i] = strings.ToLower(h)
	}
	p.Hints = lowered
}
