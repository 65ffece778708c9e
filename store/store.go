package store

import (
	"fmt"

	"github.com/viant/semsearch/similarity"
	"github.com/viant/semsearch/vector"
)

// Store is an immutable in-memory corpus snapshot: an N x dim embedding
// matrix, precomputed row magnitudes, and up to N aligned metadata records.
// Index i refers to the same logical document in both sequences. A Store is
// never mutated after construction; rebuild and swap to change the corpus.
type Store struct {
	dim  int
	vecs [][]float32
	mags []float32
	meta []vector.Metadata
}

// New builds a snapshot from embeddings and metadata. All rows must share
// one dimension and metadata must not be longer than the embedding matrix;
// it may be shorter, in which case trailing documents have no metadata.
// The provided slices are retained and must not be mutated by the caller.
func New(vectors [][]float32, meta []vector.Metadata) (*Store, error) {
	s := &Store{vecs: vectors, meta: meta}
	if len(vectors) > 0 {
		s.dim = len(vectors[0])
		if s.dim == 0 {
			return nil, fmt.Errorf("store: embedding rows must be non-empty")
		}
	}
	for i, row := range vectors {
		if len(row) != s.dim {
			return nil, fmt.Errorf("store: inconsistent embedding dims: row %d has %d, want %d", i, len(row), s.dim)
		}
	}
	if len(meta) > len(vectors) {
		return nil, fmt.Errorf("store: %d metadata records exceed %d embeddings", len(meta), len(vectors))
	}
	s.mags = make([]float32, len(vectors))
	for i, row := range vectors {
		s.mags[i] = vector.Magnitude(row)
	}
	return s, nil
}

// Len returns the number of documents in the snapshot.
func (s *Store) Len() int { return len(s.vecs) }

// Dim returns the embedding dimension, 0 for an empty snapshot.
func (s *Store) Dim() int { return s.dim }

// Vectors exposes the embedding matrix. The returned slice is shared with
// the snapshot and must be treated as read-only.
func (s *Store) Vectors() [][]float32 { return s.vecs }

// Vector returns the embedding at index i, or nil when out of range.
func (s *Store) Vector(i int) []float32 {
	if i < 0 || i >= len(s.vecs) {
		return nil
	}
	return s.vecs[i]
}

// Metadata returns the metadata record at index i. The second return is
// false when the index is out of range or beyond the metadata sequence.
func (s *Store) Metadata(i int) (vector.Metadata, bool) {
	if i < 0 || i >= len(s.meta) {
		return vector.Metadata{}, false
	}
	return s.meta[i], true
}

// MetadataLen returns the number of metadata records (<= Len).
func (s *Store) MetadataLen() int { return len(s.meta) }

// Scores computes the cosine similarity of the query against every document
// using the precomputed row magnitudes. A dimension mismatch is an error.
func (s *Store) Scores(query []float32) ([]float64, error) {
	if s.Len() > 0 && len(query) != s.dim {
		return nil, fmt.Errorf("store: query dimension %d != corpus dimension %d", len(query), s.dim)
	}
	return similarity.BatchCosineWithMagnitudes(query, s.vecs, s.mags)
}

// TopK returns the indices and scores of the k most similar documents in
// descending score order, with equal scores ordered by ascending index.
func (s *Store) TopK(query []float32, k int) ([]int, []float64, error) {
	scores, err := s.Scores(query)
	if err != nil {
		return nil, nil, err
	}
	idx, top := similarity.TopKScores(scores, k)
	return idx, top, nil
}
