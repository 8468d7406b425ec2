package handler

import "github.com/actuallystonmai/newsletter-finder/internal/domain"

type RecommendRequest struct {
	Query string `json:"query" validate:"required,notblank,max=500"`
}

type BatchRecommendRequest struct {
	Queries []string `json:"queries" validate:"required,min=1,max=50,dive,required,notblank,max=500"`
}

type RecommendationResponse struct {
	Recommendations []domain.ScoredRecommendation `json:"recommendations"`
	Metadata        domain.RecommendationMeta     `json:"metadata"`
}

type NewsletterListResponse struct {
	Newsletters []domain.Newsletter `json:"newsletters"`
	TotalCount  int                 `json:"total_count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
