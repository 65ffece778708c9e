package similarity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/viant/semsearch/vector"
)

func TestBatchCosineMatchesPairwise(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	query := randomVector(rng, 8)
	corpus := make([][]float32, 20)
	for i := range corpus {
		corpus[i] = randomVector(rng, 8)
	}

	batch, err := BatchCosine(query, corpus)
	if err != nil {
		t.Fatalf("BatchCosine failed: %v", err)
	}
	for i, row := range corpus {
		single, err := vector.Cosine(query, row)
		if err != nil {
			t.Fatalf("Cosine row %d failed: %v", i, err)
		}
		if batch[i] != single {
			t.Fatalf("row %d: batch %v != pairwise %v", i, batch[i], single)
		}
	}
}

func TestBatchCosineDimensionMismatch(t *testing.T) {
	corpus := [][]float32{{1, 0}, {1, 0, 0}}
	if _, err := BatchCosine([]float32{1, 0}, corpus); err == nil {
		t.Fatal("expected error for mismatched corpus row")
	}
}

func TestTopK(t *testing.T) {
	corpus := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	query := []float32{1, 0, 0}

	idx, scores, err := TopK(query, corpus, 2)
	if err != nil {
		t.Fatalf("TopK failed: %v", err)
	}
	if len(idx) != 2 || len(scores) != 2 {
		t.Fatalf("TopK returned %d results, want 2", len(idx))
	}
	if idx[0] != 0 {
		t.Fatalf("best match index = %d, want 0", idx[0])
	}
	if math.Abs(scores[0]-1) > 1e-6 {
		t.Fatalf("best score = %v, want 1", scores[0])
	}
	// Rows 1 and 2 both score 0; the lower index wins the tie.
	if idx[1] != 1 {
		t.Fatalf("second index = %d, want 1", idx[1])
	}
	if math.Abs(scores[1]) > 1e-6 {
		t.Fatalf("second score = %v, want 0", scores[1])
	}
}

func TestTopKSmallCorpus(t *testing.T) {
	corpus := [][]float32{{1, 0}, {0, 1}}
	idx, _, err := TopK([]float32{1, 1}, corpus, 10)
	if err != nil {
		t.Fatalf("TopK failed: %v", err)
	}
	if len(idx) != len(corpus) {
		t.Fatalf("TopK over-asked returned %d, want %d", len(idx), len(corpus))
	}
}

func TestTopKScoresTieBreak(t *testing.T) {
	scores := []float64{0.5, 0.9, 0.9, 0.1, 0.9}
	idx, top := TopKScores(scores, 3)
	want := []int{1, 2, 4}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("idx = %v, want %v", idx, want)
		}
		if top[i] != 0.9 {
			t.Fatalf("top = %v, want all 0.9", top)
		}
	}
}

func TestTopKScoresMatchesFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	scores := make([]float64, 500)
	for i := range scores {
		// Coarse buckets force plenty of exact ties.
		scores[i] = float64(rng.Intn(10)) / 10
	}

	gotIdx, _ := TopKScores(scores, 50)
	wantIdx, _ := TopKScores(scores, len(scores))
	for i := range gotIdx {
		if gotIdx[i] != wantIdx[i] {
			t.Fatalf("selection diverges from full sort at %d: %d vs %d", i, gotIdx[i], wantIdx[i])
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{1, 100},
		{-1, 0},
		{0, 50},
		{0.5, 75},
		{2, 100},
		{-2, 0},
	}
	for _, c := range cases {
		if got := Percentage(c.score); got != c.want {
			t.Fatalf("Percentage(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func randomVector(rng *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}
