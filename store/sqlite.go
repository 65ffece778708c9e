package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/viant/semsearch/vector"
)

const corpusSchema = `
CREATE TABLE IF NOT EXISTS corpus (
    id TEXT PRIMARY KEY,
    title TEXT,
    authors TEXT,
    categories TEXT,
    year INTEGER,
    date TEXT,
    embedding BLOB NOT NULL
);
`

// Document pairs one embedding with its metadata for durable storage.
type Document struct {
	Meta      vector.Metadata
	Embedding []float32
}

// SQLite persists the corpus in a SQLite database and rebuilds in-memory
// snapshots from it. Authors and categories are stored as JSON arrays (the
// canonical normalized shape); embeddings as float32 BLOBs.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps a database handle and ensures the corpus schema exists.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// EnsureSchema creates the corpus table if it does not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(corpusSchema)
	return err
}

// AddDocuments inserts or replaces documents. Every document must carry a
// non-empty ID and a non-empty embedding of one consistent dimension with
// whatever is already stored; Snapshot enforces the dimension on load.
func (s *SQLite) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO corpus(id, title, authors, categories, year, date, embedding) VALUES(?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, d := range docs {
		if d.Meta.ID == "" {
			return fmt.Errorf("store: document %d has no ID", i)
		}
		if len(d.Embedding) == 0 {
			return fmt.Errorf("store: document %q has no embedding", d.Meta.ID)
		}
		emb, err := vector.EncodeEmbedding(d.Embedding)
		if err != nil {
			return err
		}
		authors, err := json.Marshal([]string(d.Meta.Authors))
		if err != nil {
			return err
		}
		categories, err := json.Marshal([]string(d.Meta.Categories))
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, d.Meta.ID, d.Meta.Title, string(authors), string(categories), d.Meta.Year, d.Meta.Date, emb); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Remove deletes a document by ID.
func (s *SQLite) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("store: Remove called with empty id")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM corpus WHERE id = ?`, id)
	return err
}

// Count returns the number of stored documents.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM corpus`).Scan(&n)
	return n, err
}

// Snapshot loads every stored document in insertion order and builds an
// immutable in-memory snapshot. Mixed embedding dimensions are a structural
// error.
func (s *SQLite) Snapshot(ctx context.Context) (*Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, authors, categories, year, date, embedding FROM corpus ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vecs [][]float32
	var meta []vector.Metadata
	for rows.Next() {
		var m vector.Metadata
		var title, authors, categories, date sql.NullString
		var year sql.NullInt64
		var blob []byte
		if err := rows.Scan(&m.ID, &title, &authors, &categories, &year, &date, &blob); err != nil {
			return nil, err
		}
		m.Title = title.String
		m.Date = date.String
		if authors.Valid && authors.String != "" {
			if err := json.Unmarshal([]byte(authors.String), &m.Authors); err != nil {
				return nil, fmt.Errorf("store: document %q: %w", m.ID, err)
			}
		}
		if categories.Valid && categories.String != "" {
			if err := json.Unmarshal([]byte(categories.String), &m.Categories); err != nil {
				return nil, fmt.Errorf("store: document %q: %w", m.ID, err)
			}
		}
		if year.Valid {
			m.Year = int(year.Int64)
		}
		emb, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("store: document %q: %w", m.ID, err)
		}
		vecs = append(vecs, emb)
		meta = append(meta, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(vecs, meta)
}
