package contract

import (
	"context"
	"time"
)

// Metric names tracked by the counter store.
const (
	MetricImpressions = "impressions"
	MetricViews       = "views"
	MetricClicks      = "clicks"
)

// CounterKey identifies one counter: a post and a metric name.
type CounterKey struct {
	PostID string
	Metric string
}

// ICounterStore holds monotonically increasing engagement counters keyed by
// (post id, metric). Increment must be atomic with respect to concurrent
// callers on the same key; the first increment of a new key yields 1.
type ICounterStore interface {
	Increment(ctx context.Context, postID, metric string) (int64, error)
	Get(ctx context.Context, postID, metric string) (int64, error)
	// Snapshot returns the current value of every known counter. Used by the
	// periodic flush into durable analytics records.
	Snapshot(ctx context.Context) (map[CounterKey]int64, error)
}

// IViewDedupFilter suppresses duplicate detail-view counts from the same
// viewer inside a time window. CheckAndSet is a single atomic operation:
// true means first-seen (an entry was created), false means the pair was
// already recorded and the view should be dropped. Entries expire passively
// after the window elapses.
type IViewDedupFilter interface {
	CheckAndSet(ctx context.Context, postID, viewer string, window time.Duration) (bool, error)
}
