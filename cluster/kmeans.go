package cluster

import (
	"fmt"
	"math"
	"math/rand"
)

// KMeansResult holds one clustering run: a label in [0, k) per input row,
// the final centroids, and the within-cluster sum of squared distances.
type KMeansResult struct {
	Labels  []int
	Centers [][]float64
	Inertia float64
}

// kMeans partitions data into k clusters. It runs `restarts` independent
// k-means++ initializations off the provided rng and keeps the lowest-inertia
// run, each bounded by maxIter Lloyd iterations. Deterministic for a given
// data, k, and rng state.
func kMeans(data [][]float64, k, restarts, maxIter int, rng *rand.Rand) (KMeansResult, error) {
	if k <= 0 {
		return KMeansResult{}, fmt.Errorf("cluster: k must be positive, got %d", k)
	}
	if len(data) == 0 {
		return KMeansResult{Labels: []int{}, Centers: [][]float64{}}, nil
	}
	if k > len(data) {
		return KMeansResult{}, fmt.Errorf("cluster: k=%d exceeds %d points", k, len(data))
	}
	if restarts < 1 {
		restarts = 1
	}
	best := KMeansResult{Inertia: math.Inf(1)}
	for r := 0; r < restarts; r++ {
		res := kMeansOnce(data, k, maxIter, rng)
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

func kMeansOnce(data [][]float64, k, maxIter int, rng *rand.Rand) KMeansResult {
	centers := seedCenters(data, k, rng)
	labels := make([]int, len(data))
	const tolerance = 1e-6

	for iter := 0; iter < maxIter; iter++ {
		// Assignment step.
		for i, row := range data {
			labels[i] = nearestCenter(row, centers)
		}
		// Update step.
		next := make([][]float64, k)
		counts := make([]int, k)
		for c := range next {
			next[c] = make([]float64, len(data[0]))
		}
		for i, row := range data {
			c := labels[i]
			counts[c]++
			for j, v := range row {
				next[c][j] += v
			}
		}
		for c := range next {
			if counts[c] == 0 {
				// Reseed an emptied cluster at the point farthest from its
				// current center to keep k populated clusters reachable.
				copy(next[c], data[farthestPoint(data, labels, centers)])
				continue
			}
			for j := range next[c] {
				next[c][j] /= float64(counts[c])
			}
		}
		shift := 0.0
		for c := range centers {
			if d := sqDistance(centers[c], next[c]); d > shift {
				shift = d
			}
		}
		centers = next
		if shift < tolerance {
			break
		}
	}
	for i, row := range data {
		labels[i] = nearestCenter(row, centers)
	}
	inertia := 0.0
	for i, row := range data {
		inertia += sqDistance(row, centers[labels[i]])
	}
	return KMeansResult{Labels: labels, Centers: centers, Inertia: inertia}
}

// seedCenters implements k-means++ seeding: the first center is uniform,
// each following center is drawn proportionally to squared distance from
// the nearest already-chosen center.
func seedCenters(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	first := data[rng.Intn(len(data))]
	centers = append(centers, append([]float64(nil), first...))

	// minDists[i] tracks the squared distance from point i to its nearest
	// already-chosen center.
	minDists := make([]float64, len(data))
	for i, row := range data {
		minDists[i] = sqDistance(row, centers[0])
	}
	for len(centers) < k {
		var total float64
		for _, d := range minDists {
			total += d
		}
		var idx int
		if total == 0 {
			idx = rng.Intn(len(data))
		} else {
			target := rng.Float64() * total
			var cum float64
			for i, d := range minDists {
				cum += d
				if cum >= target {
					idx = i
					break
				}
			}
		}
		center := append([]float64(nil), data[idx]...)
		centers = append(centers, center)
		for i, row := range data {
			if d := sqDistance(row, center); d < minDists[i] {
				minDists[i] = d
			}
		}
	}
	return centers
}

func nearestCenter(row []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDistance(row, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func farthestPoint(data [][]float64, labels []int, centers [][]float64) int {
	best, bestDist := 0, -1.0
	for i, row := range data {
		if d := sqDistance(row, centers[labels[i]]); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDistance(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		d := v - b[i]
		sum += d * d
	}
	return sum
}
