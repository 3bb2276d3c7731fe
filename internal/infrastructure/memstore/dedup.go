package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/mickyas16/postpulse/internal/domain/contract"
)

// DedupFilter is an in-memory view-dedup filter. Entries expire lazily on
// lookup and actively through a background janitor, so memory stays bounded
// even for (post, viewer) pairs that are never seen again.
type DedupFilter struct {
	mu      sync.Mutex
	entries map[dedupKey]time.Time // key -> expiry
	done    chan struct{}
	once    sync.Once
}

type dedupKey struct {
	postID string
	viewer string
}

// NewDedupFilter creates a filter. A positive janitorInterval launches a
// background goroutine that sweeps expired entries; with zero or negative
// interval the filter relies on lazy expiration only.
func NewDedupFilter(janitorInterval time.Duration) *DedupFilter {
	f := &DedupFilter{
		entries: make(map[dedupKey]time.Time),
		done:    make(chan struct{}),
	}
	if janitorInterval > 0 {
		go f.janitor(janitorInterval)
	}
	return f
}

var _ contract.IViewDedupFilter = (*DedupFilter)(nil)

// CheckAndSet reports whether (postID, viewer) is first-seen inside the
// window, recording it when it is. Check and set happen under one lock so two
// concurrent calls for the same pair cannot both report first-seen.
func (f *DedupFilter) CheckAndSet(ctx context.Context, postID, viewer string, window time.Duration) (bool, error) {
	key := dedupKey{postID: postID, viewer: viewer}
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if expiry, ok := f.entries[key]; ok && now.Before(expiry) {
		return false, nil
	}
	f.entries[key] = now.Add(window)
	return true, nil
}

// Stop terminates the janitor goroutine. Safe to call multiple times.
func (f *DedupFilter) Stop() {
	f.once.Do(func() {
		close(f.done)
	})
}

func (f *DedupFilter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.deleteExpired()
		case <-f.done:
			return
		}
	}
}

func (f *DedupFilter) deleteExpired() {
	now := time.Now()
	f.mu.Lock()
	for key, expiry := range f.entries {
		if now.After(expiry) {
			delete(f.entries, key)
		}
	}
	f.mu.Unlock()
}
