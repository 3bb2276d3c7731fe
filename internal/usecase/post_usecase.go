package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/domain/entity"
	"github.com/mickyas16/postpulse/internal/engagement"
	"github.com/mickyas16/postpulse/internal/infrastructure/metrics"
	usecasecontract "github.com/mickyas16/postpulse/internal/usecase/contract"
)

// IPostUseCase defines the post read path and click tracking operations.
type IPostUseCase interface {
	GetPosts(ctx context.Context) ([]entity.PostSummary, error)
	GetPostDetail(ctx context.Context, slug, viewerIP string) (*entity.Post, error)
	GetPostHeadings(ctx context.Context, slug string) ([]entity.Heading, error)
	IncrementPostClick(ctx context.Context, slug string) (int64, error)
}

// EngagementEmitter is the fire-and-forget sink for engagement events.
type EngagementEmitter interface {
	Emit(event engagement.Event)
}

// PostUseCaseImpl implements IPostUseCase. It orchestrates the read-through
// cache: hits are served directly, misses fall back to the post repository
// and repopulate the cache, and every read emits engagement events that are
// applied off the response path.
type PostUseCaseImpl struct {
	postRepo      contract.IPostRepository
	analyticsRepo contract.IAnalyticsRepository
	emitter       EngagementEmitter
	logger        usecasecontract.IAppLogger
	postCache     contract.IPostCache
	// simple metrics
	detailHits uint64
	detailMiss uint64
	listHits   uint64
	listMiss   uint64
}

// NewPostUseCase creates a new instance of PostUseCaseImpl.
func NewPostUseCase(postRepo contract.IPostRepository, analyticsRepo contract.IAnalyticsRepository, emitter EngagementEmitter, logger usecasecontract.IAppLogger) *PostUseCaseImpl {
	return &PostUseCaseImpl{
		postRepo:      postRepo,
		analyticsRepo: analyticsRepo,
		emitter:       emitter,
		logger:        logger,
	}
}

// check if PostUseCaseImpl implements the IPostUseCase
var _ IPostUseCase = (*PostUseCaseImpl)(nil)

// SetPostCache injects the cache store. The usecase works without one, every
// read then falls through to the repository.
func (uc *PostUseCaseImpl) SetPostCache(cache contract.IPostCache) {
	uc.postCache = cache
}

// GetPosts returns the published post list, serving from cache when possible.
// Every returned summary counts one impression, on hit and on miss alike.
func (uc *PostUseCaseImpl) GetPosts(ctx context.Context) ([]entity.PostSummary, error) {
	if uc.postCache != nil {
		t0 := time.Now()
		cached, found, err := uc.postCache.GetPostList(ctx)
		elapsed := time.Since(t0)
		if err == nil && found && cached != nil {
			atomic.AddUint64(&uc.listHits, 1)
			metrics.IncListHit()
			metrics.AddHitDuration(elapsed.Seconds())
			uc.logger.Infof("cache hit: post list size=%d took=%s", len(cached.Posts), elapsed)
			uc.emitImpressions(cached.Posts)
			return cached.Posts, nil
		} else if err == nil && !found {
			atomic.AddUint64(&uc.listMiss, 1)
			metrics.IncListMiss()
			metrics.AddMissDuration(elapsed.Seconds())
			uc.logger.Infof("cache miss: post list took=%s", elapsed)
		} else if err != nil {
			uc.logger.Warningf("cache error: post list err=%v took=%s", err, elapsed)
		}
	}

	dbStart := time.Now()
	posts, err := uc.postRepo.ListPublished(ctx)
	if err != nil {
		uc.logger.Errorf("failed to list published posts: %v", err)
		return nil, fmt.Errorf("%w: listing posts: %v", entity.ErrServiceFailure, err)
	}
	uc.logger.Infof("db fetch: post list size=%d took=%s", len(posts), time.Since(dbStart))

	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: no posts found", entity.ErrNotFound)
	}

	// Populate before returning so the next request is a hit.
	if uc.postCache != nil {
		list := &contract.CachedPostList{Posts: posts, CreatedAt: time.Now()}
		if err := uc.postCache.SetPostList(ctx, list); err != nil {
			uc.logger.Warningf("failed to cache post list: %v", err)
		}
	}

	uc.emitImpressions(posts)
	return posts, nil
}

// GetPostDetail returns a single post by slug, serving from cache when
// possible, and emits a detail-view event for the resolved viewer.
func (uc *PostUseCaseImpl) GetPostDetail(ctx context.Context, slug, viewerIP string) (*entity.Post, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: a valid slug must be provided", entity.ErrInvalidArgument)
	}

	if uc.postCache != nil {
		t0 := time.Now()
		cached, found, err := uc.postCache.GetPostBySlug(ctx, slug)
		elapsed := time.Since(t0)
		if err == nil && found && cached != nil {
			atomic.AddUint64(&uc.detailHits, 1)
			metrics.IncDetailHit()
			metrics.AddHitDuration(elapsed.Seconds())
			uc.logger.Infof("cache hit: post detail slug=%s took=%s", slug, elapsed)
			uc.emitter.Emit(engagement.DetailView(cached.ID, viewerIP))
			return cached, nil
		} else if err == nil && !found {
			atomic.AddUint64(&uc.detailMiss, 1)
			metrics.IncDetailMiss()
			metrics.AddMissDuration(elapsed.Seconds())
			uc.logger.Infof("cache miss: post detail slug=%s took=%s", slug, elapsed)
		} else if err != nil {
			uc.logger.Warningf("cache error: post detail slug=%s err=%v took=%s", slug, err, elapsed)
		}
	}

	dbStart := time.Now()
	post, err := uc.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, err
		}
		uc.logger.Errorf("failed to get post by slug: %v", err)
		return nil, fmt.Errorf("%w: fetching post %q: %v", entity.ErrServiceFailure, slug, err)
	}
	uc.logger.Infof("db fetch: post detail slug=%s took=%s", slug, time.Since(dbStart))

	if uc.postCache != nil {
		if err := uc.postCache.SetPostBySlug(ctx, slug, post); err != nil {
			uc.logger.Warningf("failed to cache post detail slug=%s: %v", slug, err)
		}
	}

	uc.emitter.Emit(engagement.DetailView(post.ID, viewerIP))
	return post, nil
}

// GetPostHeadings returns the section headings of a post. Headings are served
// uncached.
func (uc *PostUseCaseImpl) GetPostHeadings(ctx context.Context, slug string) ([]entity.Heading, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: a valid slug must be provided", entity.ErrInvalidArgument)
	}

	headings, err := uc.postRepo.ListHeadings(ctx, slug)
	if err != nil {
		uc.logger.Errorf("failed to list headings: %v", err)
		return nil, fmt.Errorf("%w: listing headings for %q: %v", entity.ErrServiceFailure, slug, err)
	}
	return headings, nil
}

// IncrementPostClick increments the durable click counter for the post with
// the given slug and returns the new value. The click is also emitted as an
// async counter metric, and the cached detail payload for the slug is
// invalidated since its embedded analytics snapshot is now stale.
func (uc *PostUseCaseImpl) IncrementPostClick(ctx context.Context, slug string) (int64, error) {
	if slug == "" {
		return 0, fmt.Errorf("%w: a valid slug must be provided", entity.ErrInvalidArgument)
	}

	post, err := uc.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return 0, err
		}
		uc.logger.Errorf("failed to get post by slug: %v", err)
		return 0, fmt.Errorf("%w: fetching post %q: %v", entity.ErrServiceFailure, slug, err)
	}

	_, created, err := uc.analyticsRepo.GetOrCreateForPost(ctx, post.ID)
	if err != nil {
		uc.logger.Errorf("failed to get or create analytics record: %v", err)
		return 0, fmt.Errorf("%w: analytics record for post %q: %v", entity.ErrServiceFailure, post.ID, err)
	}
	if created {
		uc.logger.Infof("created analytics record for post %s", post.ID)
	}

	clicks, err := uc.analyticsRepo.IncrementClick(ctx, post.ID)
	if err != nil {
		uc.logger.Errorf("failed to increment click count: %v", err)
		return 0, fmt.Errorf("%w: incrementing clicks for post %q: %v", entity.ErrServiceFailure, post.ID, err)
	}

	uc.emitter.Emit(engagement.Click(post.ID))

	if uc.postCache != nil {
		if err := uc.postCache.InvalidatePostBySlug(ctx, slug); err != nil {
			uc.logger.Warningf("failed to invalidate post detail slug=%s: %v", slug, err)
		}
	}

	return clicks, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}

func (uc *PostUseCaseImpl) emitImpressions(posts []entity.PostSummary) {
	for _, post := range posts {
		uc.emitter.Emit(engagement.Impression(post.ID))
	}
}
