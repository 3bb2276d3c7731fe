package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mickyas16/postpulse/internal/domain/contract"
)

func TestCounterStore_IncrementAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewCounterStore()

	value, err := s.Increment(ctx, "post-1", contract.MetricViews)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), value)

	value, err = s.Increment(ctx, "post-1", contract.MetricViews)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), value)

	// Other keys are independent.
	value, err = s.Get(ctx, "post-1", contract.MetricClicks)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestCounterStore_ConcurrentIncrementsDoNotLoseUpdates(t *testing.T) {
	const goroutines = 50
	const perGoroutine = 200

	ctx := context.Background()
	s := NewCounterStore()

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				_, _ = s.Increment(ctx, "post-1", contract.MetricImpressions)
			}
		}()
	}
	wg.Wait()

	value, err := s.Get(ctx, "post-1", contract.MetricImpressions)
	assert.NoError(t, err)
	assert.Equal(t, int64(goroutines*perGoroutine), value)
}

func TestCounterStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := NewCounterStore()

	_, _ = s.Increment(ctx, "post-1", contract.MetricViews)
	_, _ = s.Increment(ctx, "post-1", contract.MetricViews)
	_, _ = s.Increment(ctx, "post-2", contract.MetricClicks)

	snapshot, err := s.Snapshot(ctx)
	assert.NoError(t, err)
	assert.Len(t, snapshot, 2)
	assert.Equal(t, int64(2), snapshot[contract.CounterKey{PostID: "post-1", Metric: contract.MetricViews}])
	assert.Equal(t, int64(1), snapshot[contract.CounterKey{PostID: "post-2", Metric: contract.MetricClicks}])

	// Snapshot is a copy, mutating it does not touch the store.
	snapshot[contract.CounterKey{PostID: "post-1", Metric: contract.MetricViews}] = 99
	value, _ := s.Get(ctx, "post-1", contract.MetricViews)
	assert.Equal(t, int64(2), value)
}
