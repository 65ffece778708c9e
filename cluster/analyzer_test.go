package cluster

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/semsearch/store"
)

// blobSnapshot builds a snapshot of two well-separated float32 blobs.
func blobSnapshot(t *testing.T, n, dim int) *store.Store {
	t.Helper()
	rng := rand.New(rand.NewSource(21))
	vecs := make([][]float32, n)
	for i := range vecs {
		offset := float32(0)
		if i%2 == 1 {
			offset = 30
		}
		row := make([]float32, dim)
		for j := range row {
			row[j] = offset + float32(rng.NormFloat64())
		}
		vecs[i] = row
	}
	s, err := store.New(vecs, nil)
	require.NoError(t, err)
	return s
}

func TestAnalyze(t *testing.T) {
	s := blobSnapshot(t, 60, 4)
	a := NewAnalyzer(Config{})

	assignment, err := a.Analyze(context.Background(), s, 2)
	require.NoError(t, err)
	require.Equal(t, 2, assignment.K)
	require.Len(t, assignment.Labels, s.Len())
	require.Len(t, assignment.Centers, 2)
	require.Len(t, assignment.Centers[0], s.Dim())

	total := 0
	for _, size := range assignment.Sizes {
		total += size.Count
		assert.InDelta(t, float64(size.Count)/float64(s.Len())*100, size.Percent, 1e-9)
	}
	assert.Equal(t, s.Len(), total, "cluster sizes partition the corpus")
	assert.Greater(t, assignment.Inertia, 0.0)
}

func TestAnalyzeDeterministicForSeed(t *testing.T) {
	s := blobSnapshot(t, 40, 3)
	a := NewAnalyzer(Config{Seed: 42})

	first, err := a.Analyze(context.Background(), s, 3)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), s, 3)
	require.NoError(t, err)
	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.Inertia, second.Inertia)
}

func TestAnalyzeReducesWideEmbeddings(t *testing.T) {
	s := blobSnapshot(t, 50, 8)
	a := NewAnalyzer(Config{ReducedDim: 3})

	assignment, err := a.Analyze(context.Background(), s, 2)
	require.NoError(t, err)
	require.Len(t, assignment.Labels, s.Len())
	// Centers map back to the original embedding space.
	require.Len(t, assignment.Centers[0], s.Dim())

	// The blobs stay separable after reduction.
	first, second := assignment.Labels[0], assignment.Labels[1]
	assert.NotEqual(t, first, second)
	for i, l := range assignment.Labels {
		if i%2 == 0 {
			assert.Equal(t, first, l, "point %d", i)
		} else {
			assert.Equal(t, second, l, "point %d", i)
		}
	}
}

func TestAnalyzeEdgeCases(t *testing.T) {
	a := NewAnalyzer(Config{})

	empty, err := store.New(nil, nil)
	require.NoError(t, err)
	assignment, err := a.Analyze(context.Background(), empty, 3)
	require.NoError(t, err)
	assert.Empty(t, assignment.Labels)

	s := blobSnapshot(t, 10, 2)
	_, err = a.Analyze(context.Background(), s, 0)
	require.Error(t, err)
	_, err = a.Analyze(context.Background(), s, 11)
	require.Error(t, err, "k cannot exceed the corpus size")
}

func TestAnalyzeHonoursContext(t *testing.T) {
	s := blobSnapshot(t, 30, 2)
	a := NewAnalyzer(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.Analyze(ctx, s, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimalKPicksTwoBlobs(t *testing.T) {
	s := blobSnapshot(t, 80, 3)
	a := NewAnalyzer(Config{})

	res, err := a.OptimalK(context.Background(), s, 6)
	require.NoError(t, err)
	assert.Equal(t, 2, res.BestK)
	assert.Contains(t, res.Scores, 2)
	for k := range res.Scores {
		assert.GreaterOrEqual(t, res.Scores[res.BestK], res.Scores[k])
	}
}

func TestOptimalKEdgeCases(t *testing.T) {
	a := NewAnalyzer(Config{})

	s := blobSnapshot(t, 20, 2)
	_, err := a.OptimalK(context.Background(), s, 1)
	require.Error(t, err)

	single, err := store.New([][]float32{{1, 0}}, nil)
	require.NoError(t, err)
	res, err := a.OptimalK(context.Background(), single, 5)
	require.NoError(t, err)
	assert.Zero(t, res.BestK)
	assert.Empty(t, res.Scores)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.OptimalK(ctx, s, 5)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimalKSamplesLargeCorpora(t *testing.T) {
	s := blobSnapshot(t, 120, 2)
	a := NewAnalyzer(Config{SampleSize: 40})

	res, err := a.OptimalK(context.Background(), s, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, res.BestK, "sampling must not hide the blob structure")
}

func TestJobBackgroundRun(t *testing.T) {
	s := blobSnapshot(t, 40, 2)
	a := NewAnalyzer(Config{})

	job := a.Go(context.Background(), s, 2)
	assignment, err := job.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, assignment.Labels, s.Len())

	got, finished, err := job.Result()
	require.True(t, finished)
	require.NoError(t, err)
	assert.Equal(t, assignment, got)
}

func TestSweepJobBackgroundRun(t *testing.T) {
	s := blobSnapshot(t, 40, 2)
	a := NewAnalyzer(Config{})

	job := a.GoOptimalK(context.Background(), s, 4)
	res, err := job.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.BestK)
	<-job.Done()
}
