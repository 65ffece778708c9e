package cluster

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/viant/semsearch/internal/logger"
	"github.com/viant/semsearch/store"
)

// Config bounds a clustering run. Zero values pick the defaults below.
type Config struct {
	// ReducedDim is the target dimensionality; corpora with a larger
	// embedding dimension are projected down before clustering.
	ReducedDim int
	// Restarts is the number of independent k-means initializations.
	Restarts int
	// MaxIterations caps Lloyd iterations per restart.
	MaxIterations int
	// SampleSize caps the number of documents used by the OptimalK sweep.
	SampleSize int
	// Seed fixes all random draws so repeated runs are reproducible.
	Seed int64
}

const (
	DefaultReducedDim    = 50
	DefaultRestarts      = 10
	DefaultMaxIterations = 300
	DefaultSampleSize    = 1000
	DefaultSeed          = 42
)

func (c Config) withDefaults() Config {
	if c.ReducedDim <= 0 {
		c.ReducedDim = DefaultReducedDim
	}
	if c.Restarts <= 0 {
		c.Restarts = DefaultRestarts
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.SampleSize <= 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	return c
}

// Analyzer runs clustering over corpus snapshots. It is stateless across
// runs: every Analyze recomputes from scratch, and an Assignment is only
// meaningful for the snapshot it was computed from.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer, applying defaults to the config.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg.withDefaults()}
}

// Size is one cluster's share of the corpus.
type Size struct {
	Cluster int     `json:"cluster"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Assignment maps every document index to a cluster id in [0, K). Centers
// are reported in the original embedding space (mapped back through the
// reduction when one was applied; best effort, see PCA.Inverse).
type Assignment struct {
	K       int         `json:"k"`
	Labels  []int       `json:"labels"`
	Centers [][]float64 `json:"-"`
	Inertia float64     `json:"inertia"`
	Sizes   []Size      `json:"sizes"`
}

// Analyze clusters the snapshot into k groups. The embedding matrix is
// reduced to ReducedDim dimensions first when its dimension exceeds it.
// The context is checked between the reduction and clustering phases; an
// empty snapshot yields an empty assignment rather than an error.
func (a *Analyzer) Analyze(ctx context.Context, s *store.Store, k int) (*Assignment, error) {
	if k <= 0 {
		return nil, fmt.Errorf("cluster: k must be positive, got %d", k)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Len() == 0 {
		return &Assignment{K: k, Labels: []int{}}, nil
	}
	data, pca, err := a.prepare(s)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(a.cfg.Seed))
	res, err := kMeans(data, k, a.cfg.Restarts, a.cfg.MaxIterations, rng)
	if err != nil {
		return nil, err
	}
	centers := res.Centers
	if pca != nil {
		centers = pca.Inverse(centers)
	}
	logger.Debug("cluster: k=%d over %d documents, inertia %.3f", k, s.Len(), res.Inertia)
	return &Assignment{
		K:       k,
		Labels:  res.Labels,
		Centers: centers,
		Inertia: res.Inertia,
		Sizes:   sizes(res.Labels, k, s.Len()),
	}, nil
}

// OptimalKResult records one silhouette sweep: the score per valid k and
// the k that maximized it. BestK is 0 when no k produced a valid score, in
// which case callers fall back to their configured default.
type OptimalKResult struct {
	Scores map[int]float64 `json:"scores"`
	BestK  int             `json:"best_k"`
}

// OptimalK sweeps k from 2 to maxK over a seeded random sample of at most
// SampleSize documents (the full corpus when smaller) and scores each
// clustering by silhouette. A k that degenerates to fewer than two distinct
// labels is skipped, never fatal. The context is honoured between k trials,
// so a sweep can be abandoned without corrupting anything.
func (a *Analyzer) OptimalK(ctx context.Context, s *store.Store, maxK int) (*OptimalKResult, error) {
	if maxK < 2 {
		return nil, fmt.Errorf("cluster: maxK must be at least 2, got %d", maxK)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	out := &OptimalKResult{Scores: map[int]float64{}}
	if s.Len() < 2 {
		return out, nil
	}
	data, _, err := a.prepare(s)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(a.cfg.Seed))
	sample := data
	if len(data) > a.cfg.SampleSize {
		perm := rng.Perm(len(data))[:a.cfg.SampleSize]
		sort.Ints(perm)
		sample = make([][]float64, len(perm))
		for i, idx := range perm {
			sample[i] = data[idx]
		}
	}

	bestScore := 0.0
	for k := 2; k <= maxK && k <= len(sample); k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := kMeans(sample, k, a.cfg.Restarts, a.cfg.MaxIterations, rng)
		if err != nil {
			return nil, err
		}
		score, err := Silhouette(sample, res.Labels)
		if err != nil {
			logger.Debug("cluster: k=%d skipped: %v", k, err)
			continue
		}
		out.Scores[k] = score
		if out.BestK == 0 || score > bestScore {
			out.BestK, bestScore = k, score
		}
	}
	logger.Debug("cluster: optimal-k sweep picked k=%d from %d candidates", out.BestK, len(out.Scores))
	return out, nil
}

// prepare converts the snapshot to float64 rows, reducing dimensionality
// when the corpus dimension exceeds the configured target.
func (a *Analyzer) prepare(s *store.Store) ([][]float64, *PCA, error) {
	data := make([][]float64, s.Len())
	for i, row := range s.Vectors() {
		converted := make([]float64, len(row))
		for j, v := range row {
			converted[j] = float64(v)
		}
		data[i] = converted
	}
	if s.Dim() <= a.cfg.ReducedDim {
		return data, nil, nil
	}
	pca, err := FitPCA(data, a.cfg.ReducedDim, a.cfg.Seed)
	if err != nil {
		return nil, nil, err
	}
	return pca.Transform(data), pca, nil
}

func sizes(labels []int, k, total int) []Size {
	counts := make([]int, k)
	for _, l := range labels {
		if l >= 0 && l < k {
			counts[l]++
		}
	}
	out := make([]Size, k)
	for c, n := range counts {
		out[c] = Size{Cluster: c, Count: n, Percent: float64(n) / float64(total) * 100}
	}
	return out
}
