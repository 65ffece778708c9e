package cluster

import (
	"errors"
	"math"
)

// ErrSilhouetteUndefined is returned when fewer than two distinct clusters
// are present; the score has no definition in that case.
var ErrSilhouetteUndefined = errors.New("cluster: silhouette undefined for fewer than 2 clusters")

// Silhouette computes the mean silhouette coefficient over all points:
// (b-a)/max(a,b) per point, where a is the mean distance to points in the
// same cluster and b the mean distance to the nearest other cluster.
// Singleton clusters contribute 0 for their point. Higher is better.
func Silhouette(data [][]float64, labels []int) (float64, error) {
	if len(data) != len(labels) {
		return 0, errors.New("cluster: silhouette data and labels length mismatch")
	}
	distinct := map[int]int{}
	for _, l := range labels {
		distinct[l]++
	}
	if len(distinct) < 2 {
		return 0, ErrSilhouetteUndefined
	}

	var total float64
	for i, row := range data {
		own := labels[i]
		if distinct[own] == 1 {
			continue // singleton contributes 0
		}
		sums := map[int]float64{}
		for j, other := range data {
			if i == j {
				continue
			}
			sums[labels[j]] += math.Sqrt(sqDistance(row, other))
		}
		a := sums[own] / float64(distinct[own]-1)
		b := math.Inf(1)
		for l, sum := range sums {
			if l == own {
				continue
			}
			if mean := sum / float64(distinct[l]); mean < b {
				b = mean
			}
		}
		if max := math.Max(a, b); max > 0 {
			total += (b - a) / max
		}
	}
	return total / float64(len(data)), nil
}
