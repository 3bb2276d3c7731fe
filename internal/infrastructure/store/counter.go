package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mickyas16/postpulse/internal/domain/contract"
)

// counterKey builds keys of the form post:{metric}:{id}.
func counterKey(postID, metric string) string {
	return fmt.Sprintf("post:%s:%s", metric, postID)
}

// RedisCounterStore keeps engagement counters in redis. INCR is atomic at the
// server, so concurrent increments on the same key never lose updates.
type RedisCounterStore struct {
	rdb *redis.Client
}

func NewRedisCounterStore(rdb *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

var _ contract.ICounterStore = (*RedisCounterStore)(nil)

func (s *RedisCounterStore) Increment(ctx context.Context, postID, metric string) (int64, error) {
	return s.rdb.Incr(ctx, counterKey(postID, metric)).Result()
}

func (s *RedisCounterStore) Get(ctx context.Context, postID, metric string) (int64, error) {
	value, err := s.rdb.Get(ctx, counterKey(postID, metric)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return value, nil
}

// Snapshot scans the counter keyspace per metric and reads each value.
func (s *RedisCounterStore) Snapshot(ctx context.Context) (map[contract.CounterKey]int64, error) {
	snapshot := make(map[contract.CounterKey]int64)
	for _, metric := range []string{contract.MetricImpressions, contract.MetricViews, contract.MetricClicks} {
		prefix := fmt.Sprintf("post:%s:", metric)
		iter := s.rdb.Scan(ctx, 0, prefix+"*", 1000).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			value, err := s.rdb.Get(ctx, key).Int64()
			if err != nil {
				if err == redis.Nil {
					continue // expired between scan and read
				}
				return nil, err
			}
			snapshot[contract.CounterKey{
				PostID: strings.TrimPrefix(key, prefix),
				Metric: metric,
			}] = value
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}

// RedisViewDedup records (post, viewer) pairs with SET NX EX: the check and
// the set are one round trip, so two concurrent views from the same viewer
// cannot both count.
type RedisViewDedup struct {
	rdb *redis.Client
}

func NewRedisViewDedup(rdb *redis.Client) *RedisViewDedup {
	return &RedisViewDedup{rdb: rdb}
}

var _ contract.IViewDedupFilter = (*RedisViewDedup)(nil)

func dedupKey(postID, viewer string) string {
	return fmt.Sprintf("post:viewed:%s:%s", postID, viewer)
}

func (d *RedisViewDedup) CheckAndSet(ctx context.Context, postID, viewer string, window time.Duration) (bool, error) {
	return d.rdb.SetNX(ctx, dedupKey(postID, viewer), 1, window).Result()
}
