package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
	"github.com/actuallystonmai/newsletter-finder/internal/model"
)

type fakeCatalog struct {
	mu    sync.Mutex
	items []domain.Newsletter
	err   error
	calls int
}

func (f *fakeCatalog) ListNewsletters(ctx context.Context) ([]domain.Newsletter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.items, f.err
}

type fakeCache struct {
	mu          sync.Mutex
	items       []domain.Newsletter
	found       bool
	getErr      error
	setErr      error
	sets        int
	invalidated int
}

func (f *fakeCache) GetCatalog(ctx context.Context) ([]domain.Newsletter, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, f.found, f.getErr
}

func (f *fakeCache) SetCatalog(ctx context.Context, items []domain.Newsletter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.items, f.found = items, true
	return nil
}

func (f *fakeCache) InvalidateCatalog(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.items, f.found = nil, false
	return nil
}

var newsletters = []domain.Newsletter{
	{Title: "Marketing Brew", Description: "Marketing news and advertising trends"},
	{Title: "TLDR", Description: "Daily technology and coding summaries"},
	{Title: "Growth Memo", Description: "SEO and growth marketing for startups"},
	{Title: "Cooking", Description: "Recipes and weeknight dinner ideas"},
}

func TestRecommend(t *testing.T) {
	svc := NewService(&fakeCatalog{items: newsletters}, nil, model.NewRanker(), 3)

	result, err := svc.Recommend(context.Background(), "marketing")
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, len(newsletters), result.CatalogSize)
	assert.False(t, result.CacheHit)
	assert.Contains(t, []string{"Marketing Brew", "Growth Memo"}, result.Recommendations[0].Title)
}

func TestRecommendUsesCache(t *testing.T) {
	catalog := &fakeCatalog{items: newsletters}
	cache := &fakeCache{}
	svc := NewService(catalog, cache, model.NewRanker(), 3)
	ctx := context.Background()

	first, err := svc.Recommend(ctx, "marketing")
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Recommend(ctx, "marketing")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, first.Recommendations, second.Recommendations)

	svc.InvalidateCatalog(ctx)
	assert.Equal(t, 1, cache.invalidated)

	_, err = svc.Recommend(ctx, "marketing")
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.calls)
}

func TestRecommendCacheErrorsAreNotFatal(t *testing.T) {
	cache := &fakeCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewService(&fakeCatalog{items: newsletters}, cache, model.NewRanker(), 3)

	result, err := svc.Recommend(context.Background(), "coding")
	require.NoError(t, err)
	assert.Equal(t, "TLDR", result.Recommendations[0].Title)
}

func TestRecommendEmptyCatalog(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(&fakeCatalog{}, cache, model.NewRanker(), 3)

	_, err := svc.Recommend(context.Background(), "marketing")
	require.ErrorIs(t, err, domain.ErrCatalogEmpty)
	assert.Zero(t, cache.sets, "empty catalog must not be cached")
}

func TestRecommendCatalogError(t *testing.T) {
	svc := NewService(&fakeCatalog{err: errors.New("connection reset")}, nil, model.NewRanker(), 3)

	_, err := svc.Recommend(context.Background(), "marketing")
	require.ErrorContains(t, err, "fetch catalog")
}

func TestNewServiceClampsLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, NewService(nil, nil, nil, 0).limit)
	assert.Equal(t, maxLimit, NewService(nil, nil, nil, 500).limit)
	assert.Equal(t, 7, NewService(nil, nil, nil, 7).limit)
}

func TestListNewsletters(t *testing.T) {
	svc := NewService(&fakeCatalog{items: newsletters}, nil, model.NewRanker(), 3)

	items, err := svc.ListNewsletters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, newsletters, items)
}

func TestRecommendBatch(t *testing.T) {
	svc := NewService(&fakeCatalog{items: newsletters}, nil, model.NewRanker(), 2)

	queries := make([]string, 25)
	for i := range queries {
		queries[i] = fmt.Sprintf("marketing %d", i)
	}

	resp := svc.RecommendBatch(context.Background(), queries)
	require.Len(t, resp.Results, len(queries))
	assert.Equal(t, len(queries), resp.Summary.SuccessCount)
	assert.Zero(t, resp.Summary.FailedCount)

	for i, r := range resp.Results {
		assert.Equal(t, queries[i], r.Query, "results keep request order")
		assert.Equal(t, domain.StatusSuccess, r.Status)
		assert.Len(t, r.Recommendations, 2)
	}
}

func TestRecommendBatchFailures(t *testing.T) {
	svc := NewService(&fakeCatalog{}, nil, model.NewRanker(), 3)

	resp := svc.RecommendBatch(context.Background(), []string{"a", "b"})
	assert.Equal(t, 2, resp.Summary.FailedCount)
	for _, r := range resp.Results {
		assert.Equal(t, domain.StatusFailed, r.Status)
		assert.Equal(t, "catalog_unavailable", r.Error)
	}
}

func TestCategorizeError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{domain.ErrCatalogEmpty, "catalog_unavailable"},
		{&model.RankingError{Msg: "no candidates"}, "catalog_unavailable"},
		{fmt.Errorf("fetch catalog: %w", context.DeadlineExceeded), "request_timeout"},
		{context.Canceled, "request_timeout"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tc := range cases {
		code, msg := CategorizeError(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.NotEmpty(t, msg)
	}
}
