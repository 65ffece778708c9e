package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/viant/semsearch/vector"
)

// LoadEmbeddings reads a dense [N, dim] embedding matrix from a flat file of
// row-major little-endian float32 values. The file size must be an exact
// multiple of dim rows; anything else is a structural error.
func LoadEmbeddings(path string, dim int) ([][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read embeddings %s: %w", path, err)
	}
	rows, err := vector.DecodeMatrix(data, dim)
	if err != nil {
		return nil, fmt.Errorf("store: decode embeddings %s: %w", path, err)
	}
	return rows, nil
}

// LoadMetadata reads an ordered JSON array of metadata records. Absent or
// null fields decode to their zero values; string-or-array author and
// category fields normalize to token sequences at this boundary.
func LoadMetadata(path string) ([]vector.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read metadata %s: %w", path, err)
	}
	var meta []vector.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: decode metadata %s: %w", path, err)
	}
	return meta, nil
}

// LoadFiles builds a snapshot from an embeddings file and an optional
// metadata file (pass "" to skip metadata). The metadata sequence may be
// shorter than the embedding matrix but never longer.
func LoadFiles(embeddingsPath string, dim int, metadataPath string) (*Store, error) {
	vecs, err := LoadEmbeddings(embeddingsPath, dim)
	if err != nil {
		return nil, err
	}
	var meta []vector.Metadata
	if metadataPath != "" {
		if meta, err = LoadMetadata(metadataPath); err != nil {
			return nil, err
		}
	}
	return New(vecs, meta)
}
