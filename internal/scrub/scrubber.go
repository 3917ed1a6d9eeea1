package scrub

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
	"sync/atomic"
)

// Scrubber owns a pattern registry and its statistics counters. The zero
// value is not usable; construct with New. A process-wide instance is
// available through Default for callers that do not need isolation.
//
// Registry mutations take a mutex and swap in a freshly sorted snapshot;
// the hot Scrub path reads the snapshot without locking, so concurrent
// scrubs never block each other.
type Scrubber struct {
	mu      sync.Mutex
	active  []Pattern // registration order, builtins first
	nextSeq int

	sorted atomic.Pointer[[]Pattern]

	stats stats
}

// New creates a Scrubber populated with the built-in pattern table.
func New() *Scrubber {
	s := &Scrubber{}
	s.stats.init()
	s.reset()
	return s
}

var (
	defaultScrubber *Scrubber
	defaultOnce     sync.Once
)

// Default returns the process-wide Scrubber.
func Default() *Scrubber {
	defaultOnce.Do(func() {
		defaultScrubber = New()
	})
	return defaultScrubber
}

// reset restores the active set to exactly the built-in table.
// Caller must not hold s.mu.
func (s *Scrubber) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = s.active[:0]
	s.nextSeq = 0
	for _, p := range builtinPatterns {
		p.seq = s.nextSeq
		s.nextSeq++
		s.active = append(s.active, p)
	}
	s.rebuildLocked()
}

// rebuildLocked recomputes the priority-sorted cache. Caller holds s.mu.
// The sort is stable so equal priorities keep registration order.
func (s *Scrubber) rebuildLocked() {
	snapshot := make([]Pattern, len(s.active))
	copy(snapshot, s.active)
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].Priority != snapshot[j].Priority {
			return snapshot[i].Priority < snapshot[j].Priority
		}
		return snapshot[i].seq < snapshot[j].seq
	})
	s.sorted.Store(&snapshot)
}

// sortedPatterns returns the current priority-sorted snapshot.
func (s *Scrubber) sortedPatterns() []Pattern {
	return *s.sorted.Load()
}

// AddPattern registers a custom detection rule. An existing pattern with the
// same name (built-in or custom) is replaced. An empty replacement is valid
// and deletes the match. Invalid input never panics: the failure reason is
// reported in the result.
func (s *Scrubber) AddPattern(name, expr, replacement string, opts ...PatternOption) AddResult {
	if name == "" {
		return AddResult{Err: errEmptyName}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return AddResult{Err: fmt.Errorf("invalid pattern %q: %w", name, err)}
	}

	p := Pattern{
		Name:          name,
		Category:      CategoryCustom,
		Regex:         re,
		Replacement:   replacement,
		Priority:      90,
		CaseSensitive: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	normalizeHints(&p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(name)
	p.seq = s.nextSeq
	s.nextSeq++
	s.active = append(s.active, p)
	s.rebuildLocked()
	return AddResult{Added: true}
}

// RemovePattern removes a pattern by name. Removing a built-in is allowed;
// ResetPatterns restores the full built-in set regardless.
func (s *Scrubber) RemovePattern(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.removeLocked(name) {
		return false
	}
	s.rebuildLocked()
	return true
}

func (s *Scrubber) removeLocked(name string) bool {
	for i, p := range s.active {
		if p.Name == name {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return true
		}
	}
	return false
}

// ResetPatterns discards all custom patterns and restores the registry to
// exactly the built-in table, in original order. Statistics are untouched.
func (s *Scrubber) ResetPatterns() {
	s.reset()
}

// ListPatterns returns name, category and priority for every active pattern,
// sorted ascending by priority.
func (s *Scrubber) ListPatterns() []PatternInfo {
	snapshot := s.sortedPatterns()
	out := make([]PatternInfo, len(snapshot))
	for i, p := range snapshot {
		out[i] = PatternInfo{Name: p.Name, Category: p.Category, Priority: p.Priority}
	}
	return out
}

// PatternCount returns the number of active patterns.
func (s *Scrubber) PatternCount() int {
	return len(s.sortedPatterns())
}

// Package-level helpers over the default Scrubber, for callers that do not
// construct their own.

// Scrub sanitizes text using the default Scrubber.
func Scrub(text string) string { return Default().Scrub(text) }

// ScrubValue recursively sanitizes a value using the default Scrubber.
func ScrubValue(v any) any { return Default().ScrubValue(v) }

// ValidateScrubbed checks text for residual leakage.
func ValidateScrubbed(text string) ValidationResult { return Validate(text) }
