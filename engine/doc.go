// Package engine opens the pure-Go SQLite driver used for the durable
// corpus and registers scalar SQL functions (vec_cosine, vec_l2) over
// embedding BLOBs, so stored embeddings can be inspected with plain SQL.
package engine
