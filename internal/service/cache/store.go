package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is one cached signal value with its computation time. Entries are
// replaced whole; readers never observe a partial write.
type Entry[T any] struct {
	Value      T
	ComputedAt time.Time
}

// Stale reports whether the entry is outside the freshness window at `now`.
func (e Entry[T]) Stale(now time.Time, window time.Duration) bool {
	return now.Sub(e.ComputedAt) >= window
}

// Store is a per-key signal cache with a get-or-compute path. Concurrent
// computes for the same key coalesce through singleflight, so an expensive
// recomputation runs at most once per key at a time. A failed compute never
// overwrites an existing entry.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	group   singleflight.Group
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		entries: make(map[string]Entry[T]),
		now:     time.Now,
	}
}

// GetOrCompute returns the cached value when it is younger than window,
// otherwise runs compute, stores the result, and returns it. The compute
// error propagates to the caller and leaves any previous entry untouched.
// The computation is detached from the caller's cancellation: an abandoned
// request still populates the cache for the next reader.
func (s *Store[T]) GetOrCompute(ctx context.Context, key string, window time.Duration, compute func(ctx context.Context) (T, error)) (T, bool, error) {
	if e, ok := s.Peek(key); ok && !e.Stale(s.now(), window) {
		return e.Value, true, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// A concurrent flight may have refreshed the entry while this
		// caller was queued behind the flight lock.
		if e, ok := s.Peek(key); ok && !e.Stale(s.now(), window) {
			return e.Value, nil
		}
		val, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.Put(key, val)
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}

// Put stores a value unconditionally with ComputedAt = now. The refresher
// uses it to bypass freshness checks.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	s.entries[key] = Entry[T]{Value: value, ComputedAt: s.now()}
	s.mu.Unlock()
}

// Peek returns the entry for key without freshness checks or side effects.
func (s *Store[T]) Peek(key string) (Entry[T], bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return e, ok
}

// Snapshot returns a copy of all entries, fresh or stale.
func (s *Store[T]) Snapshot() map[string]Entry[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Entry[T], len(s.entries))
	for k, e := range s.entries {
		out[k] = e
	}
	return out
}

// Len returns the number of cached entries.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
