package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// postListKey is the single cache key for the published post list.
const postListKey = "post_list"

// PostCacheStore is the redis-backed read-through cache for post payloads.
// Values are whole JSON documents written in one SET, so a reader never sees
// a partially populated collection.
type PostCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

// NewPostCacheStore creates a cache store with the given TTLs.
func NewPostCacheStore(rdb *redis.Client, listTTL, detailTTL time.Duration) *PostCacheStore {
	return &PostCacheStore{
		rdb:       rdb,
		detailTTL: detailTTL,
		listTTL:   listTTL,
	}
}

var _ contract.IPostCache = (*PostCacheStore)(nil)

func postDetailKey(slug string) string { return fmt.Sprintf("post_detail:%s", slug) }

func (c *PostCacheStore) GetPostBySlug(ctx context.Context, slug string) (*entity.Post, bool, error) {
	b, err := c.rdb.Get(ctx, postDetailKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var post entity.Post
	if err := json.Unmarshal(b, &post); err != nil {
		// Treat a corrupt entry as a miss; it gets overwritten on repopulate.
		return nil, false, nil
	}
	return &post, true, nil
}

func (c *PostCacheStore) SetPostBySlug(ctx context.Context, slug string, post *entity.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, postDetailKey(slug), data, c.detailTTL).Err()
}

func (c *PostCacheStore) InvalidatePostBySlug(ctx context.Context, slug string) error {
	return c.rdb.Del(ctx, postDetailKey(slug)).Err()
}

func (c *PostCacheStore) GetPostList(ctx context.Context) (*contract.CachedPostList, bool, error) {
	b, err := c.rdb.Get(ctx, postListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var list contract.CachedPostList
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, nil
	}
	return &list, true, nil
}

func (c *PostCacheStore) SetPostList(ctx context.Context, list *contract.CachedPostList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, postListKey, data, c.listTTL).Err()
}

func (c *PostCacheStore) InvalidatePostList(ctx context.Context) error {
	return c.rdb.Del(ctx, postListKey).Err()
}
