// Package tokens manages short-lived bearer tokens with automatic rotation,
// bounded storage and pluggable persistence. Token values use the tok_
// prefix that the scrub engine's built-in table detects, so a token that
// ever reaches a log line is redacted before leaving the machine.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token is one issued bearer credential.
type Token struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	Scope     string    `json:"scope"`
	IssuedAt  time.Time `json:"issued_at"`
	RotatedAt time.Time `json:"rotated_at"`
	Revoked   bool      `json:"revoked"`
}

// Persistence saves and restores the token set across restarts. Implementations
// must be safe for use from a single Store; the Store serializes calls.
type Persistence interface {
	Save(ctx context.Context, toks []Token) error
	Load(ctx context.Context) ([]Token, error)
}

// Config holds token store settings.
type Config struct {
	// RotationPeriod is how long a token value stays valid before Rotate
	// must mint a new value. Default: 1 hour.
	RotationPeriod time.Duration

	// MaxTokens bounds the number of live tokens; generating beyond the
	// bound evicts the oldest token. Default: 64.
	MaxTokens int
}

// DefaultConfig returns the default token store configuration.
func DefaultConfig() Config {
	return Config{
		RotationPeriod: time.Hour,
		MaxTokens:      64,
	}
}

var (
	ErrNotFound = errors.New("token not found")
	ErrRevoked  = errors.New("token is revoked")
)

// Store issues, rotates and revokes tokens.
type Store struct {
	mu      sync.Mutex
	cfg     Config
	tokens  map[string]*Token // by ID
	order   []string          // IDs oldest-first, for eviction
	persist Persistence
	logger  *slog.Logger

	now func() time.Time // overridable in tests
}

// NewStore creates a token store. persist may be nil for in-memory use.
func NewStore(cfg Config, persist Persistence, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RotationPeriod <= 0 {
		cfg.RotationPeriod = DefaultConfig().RotationPeriod
	}
	if cfg.MaxTokens < 1 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Store{
		cfg:     cfg,
		tokens:  make(map[string]*Token),
		persist: persist,
		logger:  logger,
		now:     time.Now,
	}
}

// Open restores previously persisted tokens. A store without persistence
// starts empty and Open is a no-op.
func (s *Store) Open(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	toks, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tokens: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range toks {
		t := toks[i]
		s.tokens[t.ID] = &t
		s.order = append(s.order, t.ID)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		return s.tokens[s.order[i]].IssuedAt.Before(s.tokens[s.order[j]].IssuedAt)
	})
	return nil
}

// newValue mints a fresh opaque token value.
func newValue() string {
	return "tok_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Generate issues a new token for the given scope. When the store is at
// capacity the oldest token is evicted first. A failed save rolls the
// in-memory state back, evictions included, so the store never diverges
// from its persistence.
func (s *Store) Generate(ctx context.Context, scope string) (Token, error) {
	s.mu.Lock()
	now := s.now()
	t := &Token{
		ID:        uuid.NewString(),
		Value:     newValue(),
		Scope:     scope,
		IssuedAt:  now,
		RotatedAt: now,
	}
	var evicted []*Token
	for len(s.order) >= s.cfg.MaxTokens {
		oldest := s.order[0]
		s.order = s.order[1:]
		evicted = append(evicted, s.tokens[oldest])
		delete(s.tokens, oldest)
		s.logger.Debug("evicted oldest token", "id", oldest)
	}
	s.tokens[t.ID] = t
	s.order = append(s.order, t.ID)
	out := *t
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		s.mu.Lock()
		s.dropLocked(t.ID)
		for i := len(evicted) - 1; i >= 0; i-- {
			e := evicted[i]
			s.tokens[e.ID] = e
			s.order = append([]string{e.ID}, s.order...)
		}
		s.mu.Unlock()
		return Token{}, err
	}
	return out, nil
}

// dropLocked removes a token from the map and the eviction order.
// Caller holds s.mu.
func (s *Store) dropLocked(id string) {
	delete(s.tokens, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Rotate replaces the token's value and restarts its rotation clock.
// Revoked tokens cannot be rotated back to life. A failed save restores
// the previous value and clock.
func (s *Store) Rotate(ctx context.Context, id string) (Token, error) {
	s.mu.Lock()
	t, ok := s.tokens[id]
	if !ok {
		s.mu.Unlock()
		return Token{}, ErrNotFound
	}
	if t.Revoked {
		s.mu.Unlock()
		return Token{}, ErrRevoked
	}
	prevValue, prevRotated := t.Value, t.RotatedAt
	t.Value = newValue()
	t.RotatedAt = s.now()
	out := *t
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		s.mu.Lock()
		if cur, ok := s.tokens[id]; ok {
			cur.Value = prevValue
			cur.RotatedAt = prevRotated
		}
		s.mu.Unlock()
		return Token{}, err
	}
	return out, nil
}

// IsValid reports whether value names a live token: known, not revoked, and
// rotated within the rotation period.
func (s *Store) IsValid(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.Value != value {
			continue
		}
		if t.Revoked {
			return false
		}
		return s.now().Sub(t.RotatedAt) < s.cfg.RotationPeriod
	}
	return false
}

// Revoke marks the token unusable. It stays in the store (and in stats of
// the caller) until evicted, so a revoked value can never be reissued as
// valid by a racing Rotate. The revocation holds in memory even when the
// save fails: IsValid must never report a revoked value as live.
func (s *Store) Revoke(ctx context.Context, id string) error {
	s.mu.Lock()
	t, ok := s.tokens[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	t.Revoked = true
	s.mu.Unlock()

	return s.save(ctx)
}

// List returns copies of all held tokens, oldest first.
func (s *Store) List() []Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Token, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tokens[id])
	}
	return out
}

// Count returns the number of tokens currently held, including revoked ones.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// save snapshots the token set to persistence. Caller must not hold s.mu.
func (s *Store) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	s.mu.Lock()
	snapshot := make([]Token, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, *s.tokens[id])
	}
	s.mu.Unlock()

	if err := s.persist.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}
