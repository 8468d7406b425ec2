package model

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
)

const DefaultLimit = 3

// Ranker scores newsletter descriptions against a free-text query using
// TF-IDF weighted cosine similarity. It is stateless; the index is built per
// call from the candidates given.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

type RankInput struct {
	Query      string
	Candidates []domain.Newsletter
	Limit      int
}

type RankingError struct {
	Msg string
}

func (e *RankingError) Error() string {
	return e.Msg
}

func IsRankingError(err error) bool {
	var target *RankingError
	return errors.As(err, &target)
}

// Rank scores every candidate and returns the top Limit by score. Ties keep
// catalog order. A query sharing no terms with the catalog still yields Limit
// results, all scored zero.
func (r *Ranker) Rank(input RankInput) ([]domain.ScoredRecommendation, error) {
	if len(input.Candidates) == 0 {
		return nil, &RankingError{Msg: "no candidates to rank"}
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	docs := make([][]string, len(input.Candidates))
	for i, c := range input.Candidates {
		docs[i] = tokenize(c.Description)
	}
	idf := inverseDocumentFrequency(docs)

	queryVec := weigh(tokenize(input.Query), idf)

	scored := make([]domain.ScoredRecommendation, 0, len(input.Candidates))
	for i, c := range input.Candidates {
		score := cosine(queryVec, weigh(docs[i], idf))
		scored = append(scored, domain.ScoredRecommendation{
			Title:       c.Title,
			Description: c.Description,
			Score:       math.Round(score*1000) / 1000, // 3 decimal places
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "that": true, "the": true,
	"this": true, "to": true, "with": true, "your": true, "you": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Smoothed idf: ln((1+n)/(1+df)) + 1, so terms in every document keep a
// small positive weight.
func inverseDocumentFrequency(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// Terms outside the catalog vocabulary carry no weight.
func weigh(tokens []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		if w, ok := idf[t]; ok {
			vec[t] += w
		}
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
