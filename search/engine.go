package search

import (
	"context"
	"fmt"

	"github.com/viant/semsearch/internal/logger"
	"github.com/viant/semsearch/similarity"
	"github.com/viant/semsearch/store"
)

// Default query parameters.
const (
	DefaultK         = 5
	DefaultThreshold = 0.5
)

// EmbedFunc converts free-form text into an embedding.
//
// Implementations can call any embedding provider (a local sentence encoder,
// OpenAI, other cloud APIs, etc.) as long as they return a vector whose
// dimension matches the corpus. The engine never loads a model itself; the
// handle's lifecycle (load once, reuse across calls) belongs to the caller.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Engine ranks corpus documents against a query. It is a stateless-per-call
// computation layer over the corpus handle; any number of searches may run
// concurrently, each against the snapshot current when it started.
type Engine struct {
	corpus *store.Handle
	embed  EmbedFunc
}

// New constructs an Engine over a corpus handle. embed may be nil when only
// SearchVector and DocumentByIndex are used; Search then reports that no
// embedder is configured.
func New(corpus *store.Handle, embed EmbedFunc) (*Engine, error) {
	if corpus == nil {
		return nil, fmt.Errorf("search: corpus handle is nil")
	}
	return &Engine{corpus: corpus, embed: embed}, nil
}

// Search embeds the query text and ranks the corpus against it. k bounds the
// number of results (DefaultK when k <= 0); threshold drops hits scoring
// below it.
//
// Thresholding applies after top-k selection: a document ranked outside the
// top-k window is not returned even if it exceeds the threshold. See Result
// for the no-match sentinel contract.
func (e *Engine) Search(ctx context.Context, query string, k int, threshold float64) ([]Result, error) {
	if e.embed == nil {
		return nil, fmt.Errorf("search: no embedder configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	vec, err := e.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: embed query: %w", err)
	}
	logger.Debug("search: query %q embedded to %d dims", query, len(vec))
	return e.SearchVector(vec, k, threshold)
}

// SearchVector ranks the corpus against an already-embedded query vector.
// It follows the same contract as Search, including the no-match sentinel.
// A query dimension differing from the corpus dimension is a fatal input
// error.
func (e *Engine) SearchVector(query []float32, k int, threshold float64) ([]Result, error) {
	if k <= 0 {
		k = DefaultK
	}
	snap := e.corpus.Snapshot()
	if snap.Len() == 0 {
		return []Result{}, nil
	}
	indices, scores, err := snap.TopK(query, k)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(indices))
	for i, idx := range indices {
		if scores[i] < threshold {
			continue
		}
		results = append(results, e.newResult(snap, idx, scores[i]))
	}
	if len(results) == 0 {
		best := 0.0
		if len(scores) > 0 {
			best = scores[0]
		}
		logger.Debug("search: no result met threshold %.2f (best score %.3f)", threshold, best)
		return []Result{{
			Index:   -1,
			Score:   best,
			NoMatch: true,
			Message: fmt.Sprintf("no result met the similarity threshold %.2f", threshold),
		}}, nil
	}
	logger.Debug("search: %d results (best score %.3f)", len(results), results[0].Score)
	return results, nil
}

// DocumentByIndex returns the document at index i. The second return is
// false when i is out of range; an in-range document with no metadata record
// still resolves, with Metadata nil.
func (e *Engine) DocumentByIndex(i int) (Document, bool) {
	snap := e.corpus.Snapshot()
	if i < 0 || i >= snap.Len() {
		return Document{}, false
	}
	doc := Document{Index: i, Embedding: snap.Vector(i)}
	if meta, ok := snap.Metadata(i); ok {
		doc.Metadata = &meta
	}
	return doc, true
}

func (e *Engine) newResult(snap *store.Store, idx int, score float64) Result {
	r := Result{
		Index:      idx,
		Score:      score,
		Percentage: similarity.Percentage(score),
		Quality:    QualityOf(score),
	}
	if meta, ok := snap.Metadata(idx); ok {
		r.Metadata = &meta
	}
	return r
}
