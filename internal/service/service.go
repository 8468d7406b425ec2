package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
	"github.com/actuallystonmai/newsletter-finder/internal/logging"
	"github.com/actuallystonmai/newsletter-finder/internal/metrics"
	"github.com/actuallystonmai/newsletter-finder/internal/model"
	"github.com/actuallystonmai/newsletter-finder/internal/repository"
)

const (
	defaultLimit     = model.DefaultLimit
	maxLimit         = 20
	batchConcurrency = 10
)

// CatalogCache is implemented by *cache.Cache.
type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]domain.Newsletter, bool, error)
	SetCatalog(ctx context.Context, items []domain.Newsletter) error
	InvalidateCatalog(ctx context.Context) error
}

type Service struct {
	catalog repository.Catalog
	cache   CatalogCache
	ranker  *model.Ranker
	limit   int
}

// NewService wires the ranking pipeline. cache may be nil.
func NewService(catalog repository.Catalog, cache CatalogCache, ranker *model.Ranker, limit int) *Service {
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}
	return &Service{
		catalog: catalog,
		cache:   cache,
		ranker:  ranker,
		limit:   limit,
	}
}

func (s *Service) Recommend(ctx context.Context, query string) (*domain.RecommendationResult, error) {
	newsletters, cacheHit, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(newsletters) == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	start := time.Now()
	recs, err := s.ranker.Rank(model.RankInput{
		Query:      query,
		Candidates: newsletters,
		Limit:      s.limit,
	})
	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	return &domain.RecommendationResult{
		Recommendations: recs,
		CatalogSize:     len(newsletters),
		CacheHit:        cacheHit,
	}, nil
}

// ListNewsletters returns the full catalog.
func (s *Service) ListNewsletters(ctx context.Context) ([]domain.Newsletter, error) {
	items, _, err := s.loadCatalog(ctx)
	return items, err
}

func (s *Service) loadCatalog(ctx context.Context) ([]domain.Newsletter, bool, error) {
	if s.cache != nil {
		cached, found, err := s.cache.GetCatalog(ctx)
		if err != nil {
			logging.Warn().Err(err).Msg("[service] cache get error")
		}
		if found {
			metrics.CatalogCacheHits.Inc()
			return cached, true, nil
		}
		metrics.CatalogCacheMisses.Inc()
	}

	items, err := s.catalog.ListNewsletters(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("fetch catalog: %w", err)
	}

	if s.cache != nil && len(items) > 0 {
		if err := s.cache.SetCatalog(ctx, items); err != nil {
			logging.Warn().Err(err).Msg("[service] cache set error")
		}
	}
	return items, false, nil
}

// InvalidateCatalog drops the cached snapshot so the next request reloads it.
func (s *Service) InvalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		logging.Warn().Err(err).Msg("[service] cache invalidation error")
	}
}

func (s *Service) RecommendBatch(ctx context.Context, queries []string) *domain.BatchResponse {
	start := time.Now()

	// Process queries concurrently with bounded worker pool
	results := make([]domain.BatchQueryResult, len(queries))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, query := range queries {
		wg.Add(1)
		go func(idx int, q string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processQueryForBatch(ctx, q)
		}(i, query)
	}
	wg.Wait()

	// summary
	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Results: results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}
}

// Ranks a single batch query, capturing errors.
func (s *Service) processQueryForBatch(ctx context.Context, query string) domain.BatchQueryResult {
	result, err := s.Recommend(ctx, query)
	if err != nil {
		logging.Warn().Err(err).Str("query", query).Msg("[service] batch: query failed")
		code, msg := CategorizeError(err)
		return domain.BatchQueryResult{
			Query:   query,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchQueryResult{
		Query:           query,
		Recommendations: result.Recommendations,
		Status:          domain.StatusSuccess,
	}
}

// CategorizeError maps a service error to a response code and message.
func CategorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrCatalogEmpty) || model.IsRankingError(err) {
		return "catalog_unavailable", "newsletter catalog is unavailable"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "request_timeout", "request timed out, please try again"
	}
	return "internal_error", "an unexpected error occurred"
}
