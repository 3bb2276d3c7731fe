package contract

import (
	"context"

	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// IAnalyticsRepository manages the durable per-post engagement records.
type IAnalyticsRepository interface {
	// GetOrCreateForPost returns the analytics record for the post, creating
	// an empty one if none exists. The bool reports whether a record was
	// created by this call.
	GetOrCreateForPost(ctx context.Context, postID string) (*entity.PostAnalytics, bool, error)
	// IncrementClick atomically increments the durable click counter for the
	// post and returns the new value. The record is created on first use.
	IncrementClick(ctx context.Context, postID string) (int64, error)
	// SyncCounter upserts the given metric value into the post's analytics
	// record. Used by the periodic counter flush; values only ever grow, so
	// the write keeps the stored maximum.
	SyncCounter(ctx context.Context, postID, metric string, value int64) error
}
