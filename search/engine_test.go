package search

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/semsearch/store"
	"github.com/viant/semsearch/vector"
)

func testEngine(t *testing.T, embed EmbedFunc) *Engine {
	t.Helper()
	snap, err := store.New([][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}, []vector.Metadata{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
	})
	require.NoError(t, err)
	handle, err := store.NewHandle(snap)
	require.NoError(t, err)
	eng, err := New(handle, embed)
	require.NoError(t, err)
	return eng
}

func TestSearchVectorRanksAndFilters(t *testing.T) {
	eng := testEngine(t, nil)

	results, err := eng.SearchVector([]float32{1, 0, 0}, 2, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 0, r.Index)
	assert.InDelta(t, 1.0, r.Score, 1e-6)
	assert.InDelta(t, 100.0, r.Percentage, 1e-4)
	assert.Equal(t, QualityExcellent, r.Quality)
	require.NotNil(t, r.Metadata)
	assert.Equal(t, "first", r.Metadata.Title)
	assert.False(t, r.NoMatch)
}

func TestSearchVectorNoMatchSentinel(t *testing.T) {
	eng := testEngine(t, nil)

	// Equidistant query scores ~0.577 against each axis; a higher threshold
	// filters everything out.
	results, err := eng.SearchVector([]float32{1, 1, 1}, 3, 0.9)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, -1, r.Index)
	assert.True(t, r.NoMatch)
	assert.NotEmpty(t, r.Message)
	assert.InDelta(t, 1/math.Sqrt(3), r.Score, 1e-4)
}

func TestSearchVectorEmptyCorpus(t *testing.T) {
	snap, err := store.New(nil, nil)
	require.NoError(t, err)
	handle, err := store.NewHandle(snap)
	require.NoError(t, err)
	eng, err := New(handle, nil)
	require.NoError(t, err)

	results, err := eng.SearchVector([]float32{1, 0}, 5, 0.5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchVectorDefaultsK(t *testing.T) {
	eng := testEngine(t, nil)

	results, err := eng.SearchVector([]float32{1, 1, 1}, 0, 0)
	require.NoError(t, err)
	// k defaults to DefaultK, larger than the corpus; threshold 0 keeps all.
	assert.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchVectorDimensionMismatch(t *testing.T) {
	eng := testEngine(t, nil)
	_, err := eng.SearchVector([]float32{1, 0}, 2, 0.5)
	require.Error(t, err)
}

func TestSearchUsesEmbedder(t *testing.T) {
	embedded := ""
	eng := testEngine(t, func(ctx context.Context, text string) ([]float32, error) {
		embedded = text
		return []float32{0, 1, 0}, nil
	})

	results, err := eng.Search(context.Background(), "second document", 1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "second document", embedded)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Index)
}

func TestSearchEmbedderErrors(t *testing.T) {
	eng := testEngine(t, nil)
	_, err := eng.Search(context.Background(), "query", 1, 0.5)
	require.Error(t, err)

	failing := testEngine(t, func(ctx context.Context, text string) ([]float32, error) {
		return nil, fmt.Errorf("provider down")
	})
	_, err = failing.Search(context.Background(), "query", 1, 0.5)
	require.Error(t, err)
}

func TestDocumentByIndex(t *testing.T) {
	eng := testEngine(t, nil)

	doc, ok := eng.DocumentByIndex(0)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0}, doc.Embedding)
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, "a", doc.Metadata.ID)

	// Index 2 has an embedding but no metadata record.
	doc, ok = eng.DocumentByIndex(2)
	require.True(t, ok)
	assert.Nil(t, doc.Metadata)

	_, ok = eng.DocumentByIndex(3)
	assert.False(t, ok)
	_, ok = eng.DocumentByIndex(-1)
	assert.False(t, ok)
}

func TestQualityOf(t *testing.T) {
	cases := []struct {
		score float64
		want  Quality
	}{
		{0.95, QualityExcellent},
		{0.8, QualityExcellent},
		{0.7, QualityGood},
		{0.6, QualityGood},
		{0.5, QualityModerate},
		{0.4, QualityModerate},
		{0.3, QualityWeak},
		{0.2, QualityWeak},
		{0.1, QualityVeryWeak},
		{-0.5, QualityVeryWeak},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, QualityOf(c.score), "score %v", c.score)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Score: 0.9},
		{Score: 0.5},
		{Score: 0.7},
		{Score: 0.3},
	}
	stats := Summarize(results)
	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 0.9, stats.Max, 1e-9)
	assert.InDelta(t, 0.3, stats.Min, 1e-9)
	assert.InDelta(t, 0.6, stats.Mean, 1e-9)
	assert.InDelta(t, 0.6, stats.Median, 1e-9)

	// Sentinel-only sets yield zero stats.
	assert.Equal(t, Stats{}, Summarize([]Result{{Index: -1, NoMatch: true, Score: 0.4}}))
	assert.Equal(t, Stats{}, Summarize(nil))
}
