package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// AnalyticsRepository manages the durable per-post engagement records in the
// post_analytics collection. All writes are single-document atomic updates.
type AnalyticsRepository struct {
	collection *mongo.Collection
	uuidgen    contract.IUUIDGenerator
}

// NewAnalyticsRepository creates and returns a new AnalyticsRepository instance.
func NewAnalyticsRepository(db *mongo.Database, uuidgen contract.IUUIDGenerator) *AnalyticsRepository {
	return &AnalyticsRepository{
		collection: db.Collection("post_analytics"),
		uuidgen:    uuidgen,
	}
}

var _ contract.IAnalyticsRepository = (*AnalyticsRepository)(nil)

// GetOrCreateForPost returns the analytics record for the post, upserting an
// empty one when absent. The bool reports whether this call created it.
func (r *AnalyticsRepository) GetOrCreateForPost(ctx context.Context, postID string) (*entity.PostAnalytics, bool, error) {
	filter := bson.M{"post_id": postID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":         r.uuidgen.NewUUID(),
			"post_id":     postID,
			"impressions": int64(0),
			"views":       int64(0),
			"clicks":      int64(0),
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert analytics record: %w", err)
	}
	created := result.UpsertedCount > 0

	var record entity.PostAnalytics
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		return nil, created, fmt.Errorf("failed to load analytics record: %w", err)
	}
	return &record, created, nil
}

// IncrementClick atomically increments the click counter for the post and
// returns the new value. The record is created on first use.
func (r *AnalyticsRepository) IncrementClick(ctx context.Context, postID string) (int64, error) {
	filter := bson.M{"post_id": postID}
	update := bson.M{
		"$inc": bson.M{"clicks": int64(1)},
		"$set": bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{
			"_id":     r.uuidgen.NewUUID(),
			"post_id": postID,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var record entity.PostAnalytics
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record); err != nil {
		return 0, fmt.Errorf("failed to increment click count: %w", err)
	}
	return record.Clicks, nil
}

// SyncCounter upserts a counter value into the post's analytics record. $max
// keeps the write idempotent: counters only grow, so a stale flush can never
// regress a stored value.
func (r *AnalyticsRepository) SyncCounter(ctx context.Context, postID, metric string, value int64) error {
	switch metric {
	case contract.MetricImpressions, contract.MetricViews, contract.MetricClicks:
	default:
		return fmt.Errorf("unknown metric %q", metric)
	}

	filter := bson.M{"post_id": postID}
	update := bson.M{
		"$max": bson.M{metric: value},
		"$set": bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{
			"_id":     r.uuidgen.NewUUID(),
			"post_id": postID,
		},
	}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to sync %s counter: %w", metric, err)
	}
	return nil
}
