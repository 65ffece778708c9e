package vector

import (
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// Magnitude returns the Euclidean norm of a vector.
func Magnitude(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return search.Float32s(v).Magnitude()
}

// Cosine computes the cosine similarity between two vectors. A dimension
// mismatch is an error; a zero-magnitude vector on either side yields 0.0
// rather than a division by zero. The result is clamped to [-1, 1] to absorb
// floating-point overshoot.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	return CosineWithMagnitudes(a, b, Magnitude(a), Magnitude(b)), nil
}

// CosineWithMagnitudes computes cosine similarity reusing precomputed
// magnitudes. Batch scoring and pairwise scoring both go through this kernel
// so they produce identical values for identical inputs.
func CosineWithMagnitudes(a, b []float32, ma, mb float32) float64 {
	if ma == 0 || mb == 0 {
		return 0
	}
	s := 1 - float64(cosineDistance(a, b, ma, mb))
	if math.IsNaN(s) {
		return 0
	}
	return clamp(s, -1, 1)
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
