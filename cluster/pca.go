package cluster

import (
	"fmt"
	"math"
	"math/rand"
)

// PCA is a fitted orthogonal-linear reduction. Components are orthonormal
// rows spanning the dominant subspace of the training data's covariance, so
// the transpose acts as a best-effort inverse map back to the original
// space.
type PCA struct {
	mean       []float64
	components [][]float64
}

const (
	pcaMaxIterations = 100
	pcaTolerance     = 1e-7
)

// FitPCA fits a reduction to outDim dimensions on the full data matrix
// using seeded orthogonal iteration on the covariance matrix. The same data
// and seed always produce the same components.
func FitPCA(data [][]float64, outDim int, seed int64) (*PCA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cluster: PCA fit on empty data")
	}
	dim := len(data[0])
	if outDim <= 0 || outDim >= dim {
		return nil, fmt.Errorf("cluster: PCA output dimension %d must be in (0, %d)", outDim, dim)
	}

	mean := make([]float64, dim)
	for _, row := range data {
		if len(row) != dim {
			return nil, fmt.Errorf("cluster: ragged data row in PCA fit: %d vs %d", len(row), dim)
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(data))
	}

	cov := covariance(data, mean)

	// Orthogonal iteration: repeatedly multiply a random orthonormal basis
	// by the covariance and re-orthonormalize until the basis stabilizes.
	rng := rand.New(rand.NewSource(seed))
	basis := make([][]float64, outDim)
	for c := range basis {
		col := make([]float64, dim)
		for j := range col {
			col[j] = rng.NormFloat64()
		}
		basis[c] = col
	}
	orthonormalize(basis)
	for iter := 0; iter < pcaMaxIterations; iter++ {
		next := make([][]float64, outDim)
		for c, col := range basis {
			next[c] = matVec(cov, col)
		}
		orthonormalize(next)
		if basisConverged(basis, next) {
			basis = next
			break
		}
		basis = next
	}
	return &PCA{mean: mean, components: basis}, nil
}

// Transform projects rows into the reduced space.
func (p *PCA) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		reduced := make([]float64, len(p.components))
		for c, comp := range p.components {
			var sum float64
			for j, v := range row {
				sum += (v - p.mean[j]) * comp[j]
			}
			reduced[c] = sum
		}
		out[i] = reduced
	}
	return out
}

// Inverse maps reduced rows back to the original space. With orthonormal
// components this is the exact adjoint, which reconstructs the projection
// of the original point; it is best-effort, not a full inversion.
func (p *PCA) Inverse(rows [][]float64) [][]float64 {
	dim := len(p.mean)
	out := make([][]float64, len(rows))
	for i, row := range rows {
		full := append([]float64(nil), p.mean...)
		for c, comp := range p.components {
			for j := 0; j < dim; j++ {
				full[j] += row[c] * comp[j]
			}
		}
		out[i] = full
	}
	return out
}

// Dim returns the reduced dimensionality.
func (p *PCA) Dim() int { return len(p.components) }

func covariance(data [][]float64, mean []float64) [][]float64 {
	dim := len(mean)
	cov := make([][]float64, dim)
	for i := range cov {
		cov[i] = make([]float64, dim)
	}
	centered := make([]float64, dim)
	for _, row := range data {
		for j, v := range row {
			centered[j] = v - mean[j]
		}
		for i := 0; i < dim; i++ {
			ci := centered[i]
			if ci == 0 {
				continue
			}
			rowI := cov[i]
			for j := i; j < dim; j++ {
				rowI[j] += ci * centered[j]
			}
		}
	}
	n := float64(len(data))
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			cov[i][j] /= n
			cov[j][i] = cov[i][j]
		}
	}
	return cov
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		var sum float64
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out
}

// orthonormalize applies modified Gram-Schmidt in place. Columns that
// collapse to zero norm are re-seeded from the standard basis.
func orthonormalize(cols [][]float64) {
	for c := range cols {
		for prev := 0; prev < c; prev++ {
			d := dotF64(cols[c], cols[prev])
			for j := range cols[c] {
				cols[c][j] -= d * cols[prev][j]
			}
		}
		norm := math.Sqrt(dotF64(cols[c], cols[c]))
		if norm < 1e-12 {
			for j := range cols[c] {
				cols[c][j] = 0
			}
			cols[c][c%len(cols[c])] = 1
			norm = 1
		}
		for j := range cols[c] {
			cols[c][j] /= norm
		}
	}
}

func basisConverged(prev, next [][]float64) bool {
	for c := range prev {
		// Eigenvector sign may flip between iterations; compare |dot|.
		if math.Abs(1-math.Abs(dotF64(prev[c], next[c]))) > pcaTolerance {
			return false
		}
	}
	return true
}

func dotF64(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
