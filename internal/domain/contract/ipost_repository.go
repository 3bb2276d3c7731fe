package contract

import (
	"context"

	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// IPostRepository provides read access to published posts and their headings.
type IPostRepository interface {
	// ListPublished returns all published posts as summaries, newest first.
	ListPublished(ctx context.Context) ([]entity.PostSummary, error)
	// GetBySlug returns the published post with the given slug, or
	// entity.ErrNotFound when no such post exists.
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// ListHeadings returns the section headings of a post ordered by their
	// position in the content. An unknown slug yields an empty slice.
	ListHeadings(ctx context.Context, slug string) ([]entity.Heading, error)
}
