// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_recommend_requests_total",
			Help: "Recommendation requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsletter_ranking_duration_seconds",
			Help:    "Time spent ranking the catalog for one query",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_catalog_cache_hits_total",
			Help: "Catalog lookups served from Redis",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_catalog_cache_misses_total",
			Help: "Catalog lookups that fell through to the catalog source",
		},
	)
)
