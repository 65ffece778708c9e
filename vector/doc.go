// Package vector defines the embedding data model and numeric primitives
// shared by the search and clustering engines. It includes:
//   - Metadata: per-document descriptive fields with tolerant JSON decoding
//   - Embedding encoding (little-endian float32 BLOB) for files and SQLite
//   - Cosine similarity and L2 distance with the engine's edge-case rules
package vector
