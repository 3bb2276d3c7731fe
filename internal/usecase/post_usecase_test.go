package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/domain/entity"
	"github.com/mickyas16/postpulse/internal/engagement"
	"github.com/mickyas16/postpulse/internal/infrastructure/memstore"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{})   {}
func (nopLogger) Infof(format string, args ...interface{})    {}
func (nopLogger) Warnf(format string, args ...interface{})    {}
func (nopLogger) Warningf(format string, args ...interface{}) {}
func (nopLogger) Errorf(format string, args ...interface{})   {}
func (nopLogger) Fatalf(format string, args ...interface{})   {}

// fakePostRepo is an instrumented content store.
type fakePostRepo struct {
	posts     []entity.PostSummary
	bySlug    map[string]*entity.Post
	headings  map[string][]entity.Heading
	listErr   error
	getErr    error
	listCalls int
	getCalls  int
}

func (r *fakePostRepo) ListPublished(ctx context.Context) ([]entity.PostSummary, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.posts, nil
}

func (r *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	post, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("post %q: %w", slug, entity.ErrNotFound)
	}
	return post, nil
}

func (r *fakePostRepo) ListHeadings(ctx context.Context, slug string) ([]entity.Heading, error) {
	return r.headings[slug], nil
}

// fakeAnalyticsRepo is an in-memory analytics record store.
type fakeAnalyticsRepo struct {
	clicks map[string]int64
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{clicks: make(map[string]int64)}
}

func (r *fakeAnalyticsRepo) GetOrCreateForPost(ctx context.Context, postID string) (*entity.PostAnalytics, bool, error) {
	clicks, existed := r.clicks[postID]
	if !existed {
		r.clicks[postID] = 0
	}
	return &entity.PostAnalytics{PostID: postID, Clicks: clicks}, !existed, nil
}

func (r *fakeAnalyticsRepo) IncrementClick(ctx context.Context, postID string) (int64, error) {
	r.clicks[postID]++
	return r.clicks[postID], nil
}

func (r *fakeAnalyticsRepo) SyncCounter(ctx context.Context, postID, metric string, value int64) error {
	return nil
}

// fakeCache is an in-memory IPostCache without TTL behavior.
type fakeCache struct {
	list   *contract.CachedPostList
	detail map[string]*entity.Post
}

func newFakeCache() *fakeCache {
	return &fakeCache{detail: make(map[string]*entity.Post)}
}

func (c *fakeCache) GetPostBySlug(ctx context.Context, slug string) (*entity.Post, bool, error) {
	post, ok := c.detail[slug]
	return post, ok, nil
}

func (c *fakeCache) SetPostBySlug(ctx context.Context, slug string, post *entity.Post) error {
	c.detail[slug] = post
	return nil
}

func (c *fakeCache) InvalidatePostBySlug(ctx context.Context, slug string) error {
	delete(c.detail, slug)
	return nil
}

func (c *fakeCache) GetPostList(ctx context.Context) (*contract.CachedPostList, bool, error) {
	return c.list, c.list != nil, nil
}

func (c *fakeCache) SetPostList(ctx context.Context, list *contract.CachedPostList) error {
	c.list = list
	return nil
}

func (c *fakeCache) InvalidatePostList(ctx context.Context) error {
	c.list = nil
	return nil
}

// recordingEmitter captures emitted events synchronously.
type recordingEmitter struct {
	events []engagement.Event
}

func (e *recordingEmitter) Emit(event engagement.Event) {
	e.events = append(e.events, event)
}

func (e *recordingEmitter) byKind(kind engagement.Kind) []engagement.Event {
	var out []engagement.Event
	for _, event := range e.events {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}

func testPost(id, slug string) *entity.Post {
	return &entity.Post{
		ID:     id,
		Title:  "Post " + id,
		Slug:   slug,
		Status: entity.PostStatusPublished,
	}
}

func newTestUsecase(repo *fakePostRepo) (*PostUseCaseImpl, *fakeCache, *recordingEmitter, *fakeAnalyticsRepo) {
	analytics := newFakeAnalyticsRepo()
	emitter := &recordingEmitter{}
	uc := NewPostUseCase(repo, analytics, emitter, nopLogger{})
	cache := newFakeCache()
	uc.SetPostCache(cache)
	return uc, cache, emitter, analytics
}

func TestGetPosts_CacheHitSkipsStoreAndEmitsImpressions(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{}
	uc, cache, emitter, _ := newTestUsecase(repo)

	cache.list = &contract.CachedPostList{
		Posts: []entity.PostSummary{
			{ID: "1", Slug: "one"},
			{ID: "2", Slug: "two"},
		},
		CreatedAt: time.Now(),
	}

	posts, err := uc.GetPosts(ctx)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Zero(t, repo.listCalls)
	assert.Len(t, emitter.byKind(engagement.KindImpression), 2)
}

func TestGetPosts_EmptyStoreIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{}
	uc, _, emitter, _ := newTestUsecase(repo)

	_, err := uc.GetPosts(ctx)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, emitter.events)
}

func TestGetPosts_MissPopulatesCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{
		posts: []entity.PostSummary{{ID: "7", Slug: "hello-world"}},
	}
	uc, cache, emitter, _ := newTestUsecase(repo)

	posts, err := uc.GetPosts(ctx)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, repo.listCalls)
	assert.NotNil(t, cache.list)

	// The very next read is a hit.
	_, err = uc.GetPosts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	assert.Len(t, emitter.byKind(engagement.KindImpression), 2)
}

func TestGetPosts_StoreFailureIsServiceFailure(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{listErr: errors.New("connection reset")}
	uc, _, _, _ := newTestUsecase(repo)

	_, err := uc.GetPosts(ctx)
	assert.ErrorIs(t, err, entity.ErrServiceFailure)
}

func TestGetPostDetail_EmptySlugIsInvalidArgument(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newTestUsecase(&fakePostRepo{})

	_, err := uc.GetPostDetail(ctx, "", "1.2.3.4")
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestGetPostDetail_UnknownSlugIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{bySlug: map[string]*entity.Post{}}
	uc, _, _, _ := newTestUsecase(repo)

	_, err := uc.GetPostDetail(ctx, "missing", "1.2.3.4")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGetPostDetail_MissPopulatesCacheAndEmitsView(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{
		bySlug: map[string]*entity.Post{"hello-world": testPost("7", "hello-world")},
	}
	uc, cache, emitter, _ := newTestUsecase(repo)

	post, err := uc.GetPostDetail(ctx, "hello-world", "1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, "7", post.ID)
	assert.Equal(t, 1, repo.getCalls)
	assert.Contains(t, cache.detail, "hello-world")

	// Hit path: no further store fetch, a view event per read.
	_, err = uc.GetPostDetail(ctx, "hello-world", "1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)

	views := emitter.byKind(engagement.KindView)
	assert.Len(t, views, 2)
	assert.Equal(t, "7", views[0].PostID)
	assert.Equal(t, "1.2.3.4", views[0].ViewerIP)
}

func TestGetPostDetail_WorksWithoutCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{
		bySlug: map[string]*entity.Post{"hello-world": testPost("7", "hello-world")},
	}
	analytics := newFakeAnalyticsRepo()
	emitter := &recordingEmitter{}
	uc := NewPostUseCase(repo, analytics, emitter, nopLogger{})

	post, err := uc.GetPostDetail(ctx, "hello-world", "1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, "7", post.ID)
}

func TestGetPostHeadings(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{
		headings: map[string][]entity.Heading{
			"hello-world": {{Title: "Intro", Slug: "intro", Level: 2, Order: 1}},
		},
	}
	uc, _, _, _ := newTestUsecase(repo)

	headings, err := uc.GetPostHeadings(ctx, "hello-world")
	assert.NoError(t, err)
	assert.Len(t, headings, 1)

	_, err = uc.GetPostHeadings(ctx, "")
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestIncrementPostClick(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{
		bySlug: map[string]*entity.Post{"hello-world": testPost("7", "hello-world")},
	}
	uc, cache, emitter, analytics := newTestUsecase(repo)

	// A cached detail payload now embeds a stale analytics snapshot, the
	// click must invalidate it.
	cache.detail["hello-world"] = testPost("7", "hello-world")

	clicks, err := uc.IncrementPostClick(ctx, "hello-world")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), clicks)

	clicks, err = uc.IncrementPostClick(ctx, "hello-world")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), clicks)

	assert.Equal(t, int64(2), analytics.clicks["7"])
	assert.Len(t, emitter.byKind(engagement.KindClick), 2)
	assert.NotContains(t, cache.detail, "hello-world")
}

func TestIncrementPostClick_Errors(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{bySlug: map[string]*entity.Post{}}
	uc, _, _, _ := newTestUsecase(repo)

	_, err := uc.IncrementPostClick(ctx, "")
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = uc.IncrementPostClick(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

// End-to-end settling: a detail read through a real dispatcher ends with the
// views counter at 1 for the post.
func TestGetPostDetail_ViewSettlesIntoCounterStore(t *testing.T) {
	ctx := context.Background()
	repo := &fakePostRepo{
		bySlug: map[string]*entity.Post{"hello-world": testPost("7", "hello-world")},
	}
	counters := memstore.NewCounterStore()
	dedup := memstore.NewDedupFilter(0)
	defer dedup.Stop()

	dispatcher := engagement.NewDispatcher(counters, dedup, nopLogger{}, 16, 1, 30*time.Minute)
	dispatcher.Start()

	uc := NewPostUseCase(repo, newFakeAnalyticsRepo(), dispatcher, nopLogger{})
	uc.SetPostCache(newFakeCache())

	_, err := uc.GetPostDetail(ctx, "hello-world", "1.2.3.4")
	assert.NoError(t, err)
	_, err = uc.GetPostDetail(ctx, "hello-world", "1.2.3.4")
	assert.NoError(t, err)

	dispatcher.Stop()

	views, _ := counters.Get(ctx, "7", contract.MetricViews)
	assert.Equal(t, int64(1), views) // second view deduped
}
