package domain

// Recommendation is a single item as the finder client receives it.
// Position in the returned list is the only stable key.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ScoredRecommendation struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type RecommendationMeta struct {
	CatalogSize int    `json:"catalog_size"`
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
}

type RecommendationResult struct {
	Recommendations []ScoredRecommendation
	CatalogSize     int
	CacheHit        bool
}

type BatchQueryResult struct {
	Query           string                 `json:"query"`
	Recommendations []ScoredRecommendation `json:"recommendations,omitempty"`
	Status          string                 `json:"status"`
	Error           string                 `json:"error,omitempty"`
	Message         string                 `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchResponse struct {
	Results []BatchQueryResult `json:"results"`
	Summary BatchSummary       `json:"summary"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
