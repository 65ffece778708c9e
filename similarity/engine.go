package similarity

import (
	"fmt"
	"sort"

	"github.com/viant/semsearch/vector"
)

// BatchCosine scores the query against every corpus row and returns one
// cosine similarity per row. Rows with zero magnitude score 0.0; all other
// scores are clamped to [-1, 1]. It returns an error when any row's
// dimension differs from the query's.
func BatchCosine(query []float32, corpus [][]float32) ([]float64, error) {
	mags := make([]float32, len(corpus))
	for i, row := range corpus {
		mags[i] = vector.Magnitude(row)
	}
	return BatchCosineWithMagnitudes(query, corpus, mags)
}

// BatchCosineWithMagnitudes is BatchCosine with precomputed row magnitudes,
// avoiding the per-query norm pass when the corpus is long-lived.
func BatchCosineWithMagnitudes(query []float32, corpus [][]float32, mags []float32) ([]float64, error) {
	if len(mags) != len(corpus) {
		return nil, fmt.Errorf("similarity: magnitudes length %d != corpus length %d", len(mags), len(corpus))
	}
	qm := vector.Magnitude(query)
	scores := make([]float64, len(corpus))
	for i, row := range corpus {
		if len(row) != len(query) {
			return nil, fmt.Errorf("similarity: row %d dimension %d != query dimension %d", i, len(row), len(query))
		}
		scores[i] = vector.CosineWithMagnitudes(query, row, qm, mags[i])
	}
	return scores, nil
}

// TopK scores the query against the corpus and returns the indices and
// scores of the k highest-scoring rows in descending score order. When the
// corpus holds no more than k rows, all rows are returned sorted. Equal
// scores order by ascending row index.
func TopK(query []float32, corpus [][]float32, k int) ([]int, []float64, error) {
	scores, err := BatchCosine(query, corpus)
	if err != nil {
		return nil, nil, err
	}
	idx, top := TopKScores(scores, k)
	return idx, top, nil
}

// TopKScores selects the k largest entries of a precomputed score slice and
// returns parallel index and score slices in descending score order. When
// len(scores) > k, selection runs in O(N) and only the selected subset is
// sorted. Ties order by ascending original index.
func TopKScores(scores []float64, k int) ([]int, []float64) {
	if k < 0 {
		k = 0
	}
	if k > len(scores) {
		k = len(scores)
	}
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	if k < len(scores) {
		selectLargest(idx, scores, k)
	}
	idx = idx[:k]
	sortDescending(idx, scores)
	out := make([]float64, k)
	for i, j := range idx {
		out[i] = scores[j]
	}
	return idx, out
}

// Percentage linearly remaps a cosine score from [-1, 1] to [0, 100],
// clamping out-of-range inputs.
func Percentage(score float64) float64 {
	p := ((score + 1) / 2) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// better reports whether row a ranks ahead of row b: higher score first,
// lower index on equal scores.
func better(scores []float64, a, b int) bool {
	if scores[a] != scores[b] {
		return scores[a] > scores[b]
	}
	return a < b
}

// selectLargest partially partitions idx so its first k entries hold the k
// best-ranked rows, in no particular order. Classic quickselect with a
// median-of-three pivot; expected O(N).
func selectLargest(idx []int, scores []float64, k int) {
	lo, hi := 0, len(idx)-1
	for lo < hi {
		p := partition(idx, scores, lo, hi)
		switch {
		case p == k-1:
			return
		case p < k-1:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

func partition(idx []int, scores []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if better(scores, idx[mid], idx[lo]) {
		idx[lo], idx[mid] = idx[mid], idx[lo]
	}
	if better(scores, idx[hi], idx[lo]) {
		idx[lo], idx[hi] = idx[hi], idx[lo]
	}
	if better(scores, idx[hi], idx[mid]) {
		idx[mid], idx[hi] = idx[hi], idx[mid]
	}
	idx[lo], idx[mid] = idx[mid], idx[lo]
	pivot := idx[lo]
	i, j := lo, hi+1
	for {
		for {
			i++
			if i > hi || !better(scores, idx[i], pivot) {
				break
			}
		}
		for {
			j--
			if !better(scores, pivot, idx[j]) {
				break
			}
		}
		if i >= j {
			break
		}
		idx[i], idx[j] = idx[j], idx[i]
	}
	idx[lo], idx[j] = idx[j], idx[lo]
	return j
}

func sortDescending(idx []int, scores []float64) {
	sort.Slice(idx, func(i, j int) bool { return better(scores, idx[i], idx[j]) })
}
