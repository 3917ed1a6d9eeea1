package scrub

import "sync"

// stats holds the process-wide redaction counters for a Scrubber.
// Counters are read-modify-write, so every access takes the mutex.
type stats struct {
	mu         sync.Mutex
	total      int
	byCategory map[Category]int
	byPattern  map[string]int
}

func (st *stats) init() {
	st.byCategory = make(map[Category]int)
	st.byPattern = make(map[string]int)
}

func (st *stats) record(p *Pattern) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.total++
	st.byCategory[p.Category]++
	st.byPattern[p.Name]++
}

// StatsSnapshot is a point-in-time copy of a Scrubber's counters. The maps
// belong to the caller and may be mutated freely.
type StatsSnapshot struct {
	TotalScrubs  int              `json:"total_scrubs"`
	ByCategory   map[Category]int `json:"by_category"`
	ByPattern    map[string]int   `json:"by_pattern"`
	PatternCount int              `json:"pattern_count"`
}

// Stats returns a snapshot of the redaction counters.
func (s *Scrubber) Stats() StatsSnapshot {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	snap := StatsSnapshot{
		TotalScrubs:  s.stats.total,
		ByCategory:   make(map[Category]int, len(s.stats.byCategory)),
		ByPattern:    make(map[string]int, len(s.stats.byPattern)),
		PatternCount: s.PatternCount(),
	}
	for c, n := range s.stats.byCategory {
		snap.ByCategory[c] = n
	}
	for name, n := range s.stats.byPattern {
		snap.ByPattern[name] = n
	}
	return snap
}

// ResetStats zeroes all counters without touching the registry.
func (s *Scrubber) ResetStats() {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	s.stats.total = 0
	s.stats.byCategory = make(map[Category]int)
	s.stats.byPattern = make(map[string]int)
}
