package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/domain/entity"
)

// PostRepository is the MongoDB implementation of the content store.
type PostRepository struct {
	posts    *mongo.Collection
	headings *mongo.Collection
}

// NewPostRepository creates and returns a new PostRepository instance.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts:    db.Collection("posts"),
		headings: db.Collection("headings"),
	}
}

var _ contract.IPostRepository = (*PostRepository)(nil)

// ListPublished returns summaries of all published posts, newest first.
func (r *PostRepository) ListPublished(ctx context.Context) ([]entity.PostSummary, error) {
	filter := bson.M{"status": entity.PostStatusPublished}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetProjection(bson.M{
			"_id":         1,
			"title":       1,
			"description": 1,
			"thumbnail":   1,
			"slug":        1,
			"category":    1,
			"created_at":  1,
		})

	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []entity.PostSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode post summaries: %w", err)
	}
	return summaries, nil
}

// GetBySlug returns the published post with the given slug.
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	filter := bson.M{"slug": slug, "status": entity.PostStatusPublished}

	var post entity.Post
	if err := r.posts.FindOne(ctx, filter).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %q: %w", slug, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return &post, nil
}

// ListHeadings returns the section headings of a post in content order.
func (r *PostRepository) ListHeadings(ctx context.Context, slug string) ([]entity.Heading, error) {
	filter := bson.M{"post_slug": slug}
	opts := options.Find().SetSort(bson.M{"order": 1})

	cursor, err := r.headings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list headings: %w", err)
	}
	defer cursor.Close(ctx)

	var headings []entity.Heading
	if err := cursor.All(ctx, &headings); err != nil {
		return nil, fmt.Errorf("failed to decode headings: %w", err)
	}
	return headings, nil
}
