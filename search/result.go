package search

import (
	"sort"

	"github.com/viant/semsearch/vector"
)

// Quality is a human-readable bucket derived from a cosine score.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityModerate  Quality = "moderate"
	QualityWeak      Quality = "weak"
	QualityVeryWeak  Quality = "very weak"
)

// QualityOf maps a cosine score to its quality bucket. Lower bounds are
// inclusive: >=0.8 excellent, >=0.6 good, >=0.4 moderate, >=0.2 weak.
func QualityOf(score float64) Quality {
	switch {
	case score >= 0.8:
		return QualityExcellent
	case score >= 0.6:
		return QualityGood
	case score >= 0.4:
		return QualityModerate
	case score >= 0.2:
		return QualityWeak
	default:
		return QualityVeryWeak
	}
}

// Result is one ranked search hit. Results live for the duration of one
// query and are never persisted.
//
// When no document meets the threshold but the corpus produced scores, a
// single sentinel Result is returned instead of an empty list: Index is -1,
// NoMatch is true, Message explains the outcome, and Score carries the best
// raw score observed even though it fell below the threshold. Callers can
// therefore distinguish "empty corpus" (empty list) from "nothing met the
// threshold" (sentinel).
type Result struct {
	Index      int              `json:"document_index"`
	Score      float64          `json:"similarity_score"`
	Percentage float64          `json:"similarity_percentage"`
	Quality    Quality          `json:"match_quality"`
	Metadata   *vector.Metadata `json:"metadata,omitempty"`
	NoMatch    bool             `json:"no_match,omitempty"`
	Message    string           `json:"message,omitempty"`
}

// Document is a bounds-checked corpus lookup: the embedding plus metadata
// when present.
type Document struct {
	Index     int              `json:"index"`
	Embedding []float32        `json:"-"`
	Metadata  *vector.Metadata `json:"metadata,omitempty"`
}

// Stats summarizes the score distribution of one result set.
type Stats struct {
	Max    float64 `json:"max_score"`
	Min    float64 `json:"min_score"`
	Mean   float64 `json:"avg_score"`
	Median float64 `json:"median_score"`
	Total  int     `json:"total_results"`
}

// Summarize computes score statistics over non-sentinel results. An empty
// or sentinel-only result set yields zero stats.
func Summarize(results []Result) Stats {
	var scores []float64
	for _, r := range results {
		if r.NoMatch {
			continue
		}
		scores = append(scores, r.Score)
	}
	if len(scores) == 0 {
		return Stats{}
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	var sum float64
	for _, s := range sorted {
		sum += s
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return Stats{
		Max:    sorted[len(sorted)-1],
		Min:    sorted[0],
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Total:  len(sorted),
	}
}
