package handler

import (
	"net/http"
	"time"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
	"github.com/actuallystonmai/newsletter-finder/internal/logging"
	"github.com/actuallystonmai/newsletter-finder/internal/metrics"
	"github.com/actuallystonmai/newsletter-finder/internal/service"
)

// POST /recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !h.decodeJSON(w, r, &req) {
		metrics.RecommendRequests.WithLabelValues("recommend", "invalid").Inc()
		return
	}

	result, err := h.service.Recommend(r.Context(), req.Query)
	if err != nil {
		metrics.RecommendRequests.WithLabelValues("recommend", "error").Inc()
		logging.Error().Err(err).Str("query", req.Query).Msg("[handler] recommend failed")

		code, msg := service.CategorizeError(err)
		writeError(w, statusFor(err), code, msg)
		return
	}

	metrics.RecommendRequests.WithLabelValues("recommend", "success").Inc()
	writeJSON(w, http.StatusOK, RecommendationResponse{
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			CatalogSize: result.CatalogSize,
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// POST /recommend/batch
func (h *Handler) RecommendBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRecommendRequest
	if !h.decodeJSON(w, r, &req) {
		metrics.RecommendRequests.WithLabelValues("batch", "invalid").Inc()
		return
	}

	resp := h.service.RecommendBatch(r.Context(), req.Queries)
	metrics.RecommendRequests.WithLabelValues("batch", "success").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// GET /newsletters
func (h *Handler) ListNewsletters(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListNewsletters(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("[handler] list newsletters failed")
		code, msg := service.CategorizeError(err)
		writeError(w, statusFor(err), code, msg)
		return
	}
	if items == nil {
		items = []domain.Newsletter{}
	}

	writeJSON(w, http.StatusOK, NewsletterListResponse{
		Newsletters: items,
		TotalCount:  len(items),
	})
}

func statusFor(err error) int {
	switch code, _ := service.CategorizeError(err); code {
	case "catalog_unavailable", "request_timeout":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
