package scrub

import "strings"

// Scrub applies every active pattern to text in priority order and returns
// the redacted result. Empty input returns an empty string.
//
// Later patterns see the output of earlier ones, not the original text, so
// built-in replacement tokens are chosen to never fall inside a later
// pattern's detection surface.
func (s *Scrubber) Scrub(text string) string {
	return s.scrubWith(s.sortedPatterns(), text)
}

// scrubWith runs one pass over text with a fixed pattern list. A lowercase
// copy of the working text is maintained for case-insensitive hint checks
// and refreshed whenever a pattern actually changes the text, so later hint
// checks never see stale state.
func (s *Scrubber) scrubWith(patterns []Pattern, text string) string {
	if text == "" {
		return ""
	}
	lower := ""
	for i := range patterns {
		p := &patterns[i]
		if len(p.Hints) > 0 {
			haystack := text
			if !p.CaseSensitive {
				if lower == "" {
					lower = strings.ToLower(text)
				}
				haystack = lower
			}
			if !containsAny(haystack, p.Hints) {
				continue
			}
		}
		out := p.Regex.ReplaceAllString(text, p.Replacement)
		if out != text {
			text = out
			lower = ""
			s.stats.record(p)
		}
	}
	return text
}

// containsAny reports whether any hint occurs in the haystack.
func containsAny(haystack string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(haystack, h) {
			return true
		}
	}
	return false
}

// ScopedScrubber applies only the patterns whose category was selected at
// construction time. The pattern list is a snapshot: patterns added to the
// parent registry afterwards are not picked up.
type ScopedScrubber struct {
	parent   *Scrubber
	patterns []Pattern
}

// Scoped builds a scrubber restricted to the given categories. Replacements
// it performs are counted in the parent's statistics.
func (s *Scrubber) Scoped(categories ...Category) *ScopedScrubber {
	want := make(map[Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	var subset []Pattern
	for _, p := range s.sortedPatterns() {
		if want[p.Category] {
			subset = append(subset, p)
		}
	}
	return &ScopedScrubber{parent: s, patterns: subset}
}

// Scrub sanitizes text using only the scoped pattern subset.
func (sc *ScopedScrubber) Scrub(text string) string {
	return sc.parent.scrubWith(sc.patterns, text)
}

// PatternCount returns the number of patterns in the scoped subset.
func (sc *ScopedScrubber) PatternCount() int {
	return len(sc.patterns)
}
