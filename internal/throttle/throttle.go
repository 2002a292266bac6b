// Package throttle enforces a per-client cooldown between booking
// submissions. It is advisory rate limiting: it absorbs double-submits and
// casual abuse but is not a security boundary, and must not be the sole
// anti-abuse control.
package throttle

import (
	"context"
	"math"
	"sync"
	"time"
)

// Store persists the last accepted submission time per client key. The
// store is swappable so the limiter is testable without a backend.
type Store interface {
	LastSubmission(ctx context.Context, key string) (time.Time, bool, error)
	Record(ctx context.Context, key string, at time.Time) error
}

type Result struct {
	Allowed    bool
	RetryAfter int // seconds, set when denied
}

type Limiter struct {
	store    Store
	cooldown time.Duration
	now      func() time.Time
}

func NewLimiter(store Store, cooldown time.Duration) *Limiter {
	return NewLimiterWithClock(store, cooldown, time.Now)
}

func NewLimiterWithClock(store Store, cooldown time.Duration, now func() time.Time) *Limiter {
	return &Limiter{store: store, cooldown: cooldown, now: now}
}

// Check applies the cooldown for key and records the attempt time when
// allowed. A store error fails open: the limiter is advisory and must not
// block legitimate submissions on backend trouble.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	now := l.now()

	last, found, err := l.store.LastSubmission(ctx, key)
	if err != nil {
		return Result{Allowed: true}, err
	}

	if found {
		elapsed := now.Sub(last)
		if elapsed < l.cooldown {
			retry := int(math.Ceil((l.cooldown - elapsed).Seconds()))
			return Result{Allowed: false, RetryAfter: retry}, nil
		}
	}

	if err := l.store.Record(ctx, key, now); err != nil {
		return Result{Allowed: true}, err
	}
	return Result{Allowed: true}, nil
}

// MemoryStore keeps throttle state in-process. Entries expire implicitly
// once the cooldown window elapses; no explicit cleanup is needed for the
// expected key cardinality.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

func (s *MemoryStore) LastSubmission(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.entries[key]
	return t, ok, nil
}

func (s *MemoryStore) Record(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = at
	return nil
}
