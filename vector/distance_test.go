package vector

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	c := []float32{1, 0, 0}
	d := []float32{-1, 0, 0}

	// Orthogonal vectors -> similarity 0
	if sim, err := Cosine(a, b); err != nil || math.Abs(sim) > 1e-6 {
		t.Fatalf("Cosine(a,b) = %v, %v; want 0, nil", sim, err)
	}

	// Identical vectors -> similarity 1
	if sim, err := Cosine(a, c); err != nil || math.Abs(sim-1) > 1e-6 {
		t.Fatalf("Cosine(a,c) = %v, %v; want 1, nil", sim, err)
	}

	// Opposite vectors -> similarity -1
	if sim, err := Cosine(a, d); err != nil || math.Abs(sim+1) > 1e-6 {
		t.Fatalf("Cosine(a,d) = %v, %v; want -1, nil", sim, err)
	}
}

func TestCosineWithMagnitudesMatchesCosine(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2, 0.9}
	b := []float32{-0.1, 0.4, 0.8, -0.2}

	want, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("Cosine failed: %v", err)
	}
	got := CosineWithMagnitudes(a, b, Magnitude(a), Magnitude(b))
	if got != want {
		t.Fatalf("CosineWithMagnitudes = %v, Cosine = %v", got, want)
	}
	if math.Abs(got) > 1 {
		t.Fatalf("result %v outside [-1, 1]", got)
	}
}

func TestCosineZeroMagnitude(t *testing.T) {
	zero := []float32{0, 0, 0}
	a := []float32{1, 2, 3}

	sim, err := Cosine(zero, a)
	if err != nil {
		t.Fatalf("Cosine(zero,a) failed: %v", err)
	}
	if sim != 0 {
		t.Fatalf("Cosine(zero,a) = %v, want 0", sim)
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	if _, err := Cosine([]float32{1, 2}, []float32{1, 2, 3}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	if _, err := Cosine(nil, nil); err == nil {
		t.Fatal("expected error on empty vectors")
	}
}

func TestCosineClamped(t *testing.T) {
	// A vector against itself can overshoot 1.0 in float arithmetic; the
	// result must stay inside [-1, 1].
	v := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	sim, err := Cosine(v, v)
	if err != nil {
		t.Fatalf("Cosine(v,v) failed: %v", err)
	}
	if sim < -1 || sim > 1 {
		t.Fatalf("Cosine(v,v) = %v, outside [-1, 1]", sim)
	}
}

func TestL2Distance(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{3, 4}

	d, err := L2Distance(a, b)
	if err != nil {
		t.Fatalf("L2Distance failed: %v", err)
	}
	if math.Abs(d-5) > 1e-6 {
		t.Fatalf("L2Distance(0,0)-(3,4) = %v, want 5", d)
	}

	if _, err := L2Distance(a, []float32{1}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}
