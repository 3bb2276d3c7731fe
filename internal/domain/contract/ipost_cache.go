package contract

import (
	"context"
	"time"

	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// CachedPostList is the cached payload for the post list endpoint. The whole
// list is stored under a single key and written as one value, so readers never
// observe a partially populated collection.
type CachedPostList struct {
	Posts     []entity.PostSummary `json:"posts"`
	CreatedAt time.Time            `json:"created_at"`
}

// IPostCache defines caching operations for post payloads.
type IPostCache interface {
	// Detail (by slug)
	GetPostBySlug(ctx context.Context, slug string) (*entity.Post, bool, error)
	SetPostBySlug(ctx context.Context, slug string, post *entity.Post) error
	InvalidatePostBySlug(ctx context.Context, slug string) error

	// Published list
	GetPostList(ctx context.Context) (*CachedPostList, bool, error)
	SetPostList(ctx context.Context, list *CachedPostList) error
	InvalidatePostList(ctx context.Context) error
}
