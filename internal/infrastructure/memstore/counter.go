package memstore

import (
	"context"
	"sync"

	"github.com/mickyas16/postpulse/internal/domain/contract"
)

// CounterStore is an in-memory counter store. Increments are performed under
// a single mutex so concurrent callers on the same key never lose updates.
// Used when no Redis backend is configured, and by tests.
type CounterStore struct {
	mu       sync.RWMutex
	counters map[contract.CounterKey]int64
}

// NewCounterStore creates an empty counter store.
func NewCounterStore() *CounterStore {
	return &CounterStore{
		counters: make(map[contract.CounterKey]int64),
	}
}

var _ contract.ICounterStore = (*CounterStore)(nil)

// Increment atomically increments the counter and returns the new value.
// Counters are created lazily: the first increment of a new key yields 1.
func (s *CounterStore) Increment(ctx context.Context, postID, metric string) (int64, error) {
	key := contract.CounterKey{PostID: postID, Metric: metric}
	s.mu.Lock()
	s.counters[key]++
	value := s.counters[key]
	s.mu.Unlock()
	return value, nil
}

// Get returns the current counter value, zero for unknown keys.
func (s *CounterStore) Get(ctx context.Context, postID, metric string) (int64, error) {
	s.mu.RLock()
	value := s.counters[contract.CounterKey{PostID: postID, Metric: metric}]
	s.mu.RUnlock()
	return value, nil
}

// Snapshot returns a copy of every known counter.
func (s *CounterStore) Snapshot(ctx context.Context) (map[contract.CounterKey]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[contract.CounterKey]int64, len(s.counters))
	for key, value := range s.counters {
		snapshot[key] = value
	}
	return snapshot, nil
}
