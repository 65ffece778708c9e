package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/viant/semsearch/vector"
)

func writeEmbeddings(t *testing.T, rows [][]float32) string {
	t.Helper()
	var payload []byte
	for _, row := range rows {
		b, err := vector.EncodeEmbedding(row)
		if err != nil {
			t.Fatalf("EncodeEmbedding failed: %v", err)
		}
		payload = append(payload, b...)
	}
	path := filepath.Join(t.TempDir(), "embeddings.f32")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write embeddings: %v", err)
	}
	return path
}

func TestLoadFiles(t *testing.T) {
	rows := [][]float32{{1, 0, 0}, {0, 1, 0}}
	embPath := writeEmbeddings(t, rows)

	metaPath := filepath.Join(t.TempDir(), "meta.json")
	doc := `[{"id":"a","title":"First","categories":"cs.AI cs.LG"}]`
	if err := os.WriteFile(metaPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	s, err := LoadFiles(embPath, 3, metaPath)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if s.Len() != 2 || s.MetadataLen() != 1 {
		t.Fatalf("Len=%d MetadataLen=%d", s.Len(), s.MetadataLen())
	}
	meta, ok := s.Metadata(0)
	if !ok || meta.Title != "First" || len(meta.Categories) != 2 {
		t.Fatalf("Metadata(0) = %+v, %v", meta, ok)
	}
}

func TestLoadFilesWithoutMetadata(t *testing.T) {
	embPath := writeEmbeddings(t, [][]float32{{1, 2}})
	s, err := LoadFiles(embPath, 2, "")
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if s.Len() != 1 || s.MetadataLen() != 0 {
		t.Fatalf("Len=%d MetadataLen=%d", s.Len(), s.MetadataLen())
	}
}

func TestLoadEmbeddingsBadShape(t *testing.T) {
	embPath := writeEmbeddings(t, [][]float32{{1, 2, 3}})
	if _, err := LoadEmbeddings(embPath, 2); err == nil {
		t.Fatal("expected error for payload not divisible into dim-2 rows")
	}
	if _, err := LoadEmbeddings(filepath.Join(t.TempDir(), "missing"), 2); err == nil {
		t.Fatal("expected error for missing file")
	}
}
