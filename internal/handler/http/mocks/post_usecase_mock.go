package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/mickyas16/postpulse/internal/domain/entity"
	"github.com/mickyas16/postpulse/internal/usecase"
)

// MockPostUsecase is a mock implementation of the IPostUseCase interface
type MockPostUsecase struct {
	// Control mock behavior
	ShouldFailGetPosts       bool
	ShouldFailGetPostDetail  bool
	ShouldFailGetHeadings    bool
	ShouldFailIncrementClick bool
	NoPosts                  bool
	UnknownSlug              bool

	// Return values
	MockPost     entity.Post
	MockHeadings []entity.Heading
	MockClicks   int64
}

// Ensure MockPostUsecase implements the correct interface for handler.NewPostHandler
var _ usecase.IPostUseCase = (*MockPostUsecase)(nil)

func NewMockPostUsecase() *MockPostUsecase {
	return &MockPostUsecase{
		MockPost: entity.Post{
			ID:        "mock-post-id",
			Title:     "Hello World",
			Content:   "Lorem ipsum",
			Slug:      "hello-world",
			Status:    entity.PostStatusPublished,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		MockHeadings: []entity.Heading{
			{Title: "Introduction", Slug: "introduction", Level: 2, Order: 1},
			{Title: "Conclusion", Slug: "conclusion", Level: 2, Order: 2},
		},
		MockClicks: 1,
	}
}

func (m *MockPostUsecase) GetPosts(ctx context.Context) ([]entity.PostSummary, error) {
	if m.ShouldFailGetPosts {
		return nil, fmt.Errorf("%w: listing posts failed", entity.ErrServiceFailure)
	}
	if m.NoPosts {
		return nil, fmt.Errorf("%w: no posts found", entity.ErrNotFound)
	}
	return []entity.PostSummary{m.MockPost.Summary()}, nil
}

func (m *MockPostUsecase) GetPostDetail(ctx context.Context, slug, viewerIP string) (*entity.Post, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: a valid slug must be provided", entity.ErrInvalidArgument)
	}
	if m.ShouldFailGetPostDetail {
		return nil, fmt.Errorf("%w: fetching post failed", entity.ErrServiceFailure)
	}
	if m.UnknownSlug || slug != m.MockPost.Slug {
		return nil, fmt.Errorf("post %q: %w", slug, entity.ErrNotFound)
	}
	return &m.MockPost, nil
}

func (m *MockPostUsecase) GetPostHeadings(ctx context.Context, slug string) ([]entity.Heading, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: a valid slug must be provided", entity.ErrInvalidArgument)
	}
	if m.ShouldFailGetHeadings {
		return nil, fmt.Errorf("%w: listing headings failed", entity.ErrServiceFailure)
	}
	return m.MockHeadings, nil
}

func (m *MockPostUsecase) IncrementPostClick(ctx context.Context, slug string) (int64, error) {
	if slug == "" {
		return 0, fmt.Errorf("%w: a valid slug must be provided", entity.ErrInvalidArgument)
	}
	if m.ShouldFailIncrementClick {
		return 0, fmt.Errorf("%w: incrementing clicks failed", entity.ErrServiceFailure)
	}
	if m.UnknownSlug || slug != m.MockPost.Slug {
		return 0, fmt.Errorf("post %q: %w", slug, entity.ErrNotFound)
	}
	m.MockClicks++
	return m.MockClicks, nil
}
