//go:build arm64

package vector

import "github.com/viant/vec/search"

// cosineDistance reuses precomputed magnitudes. The library exports this
// kernel under a different name per architecture, so the call sits behind a
// build tag.
func cosineDistance(a, b []float32, ma, mb float32) float32 {
	return search.Float32s(a).CosineDistanceWithMagnitude(b, ma, mb)
}
