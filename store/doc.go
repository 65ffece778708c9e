// Package store holds the corpus of document embeddings and aligned
// metadata. A Store is an immutable snapshot built once from files or from
// the SQLite-backed durable corpus; reads never require coordination, and
// reloading swaps a fresh snapshot atomically so in-flight searches finish
// against the snapshot they started with.
package store
