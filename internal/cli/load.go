package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/semsearch/engine"
	"github.com/viant/semsearch/store"
)

var (
	loadEmbeddings string
	loadMetadata   string
	loadDim        int
	loadDatabase   string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import a flat embedding matrix and metadata into the corpus database",
	Long: `Reads a row-major little-endian float32 embedding file plus an optional
JSON metadata array and writes the documents into the SQLite corpus.
Documents without a metadata record get synthetic sequential IDs.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadEmbeddings, "embeddings", "", "embedding matrix file (defaults to corpus.embeddings)")
	loadCmd.Flags().StringVar(&loadMetadata, "metadata", "", "metadata JSON file (defaults to corpus.metadata)")
	loadCmd.Flags().IntVar(&loadDim, "dim", 0, "embedding dimension (defaults to corpus.dimension)")
	loadCmd.Flags().StringVar(&loadDatabase, "db", "", "target database (defaults to corpus.database)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	embeddings := loadEmbeddings
	if embeddings == "" {
		embeddings = cfg.Corpus.Embeddings
	}
	metadata := loadMetadata
	if metadata == "" {
		metadata = cfg.Corpus.Metadata
	}
	dim := loadDim
	if dim <= 0 {
		dim = cfg.Corpus.Dimension
	}
	database := loadDatabase
	if database == "" {
		database = cfg.Corpus.Database
	}
	if embeddings == "" || database == "" {
		return fmt.Errorf("load needs both an embeddings file and a database")
	}
	if dim <= 0 {
		return fmt.Errorf("load needs a positive embedding dimension")
	}

	snap, err := store.LoadFiles(embeddings, dim, metadata)
	if err != nil {
		return err
	}

	db, err := engine.Open(database)
	if err != nil {
		return fmt.Errorf("open database %s: %w", database, err)
	}
	defer db.Close()
	sq, err := store.NewSQLite(db)
	if err != nil {
		return err
	}

	docs := make([]store.Document, snap.Len())
	for i := range docs {
		docs[i] = store.Document{Embedding: snap.Vector(i)}
		if meta, ok := snap.Metadata(i); ok {
			docs[i].Meta = meta
		}
		if docs[i].Meta.ID == "" {
			docs[i].Meta.ID = fmt.Sprintf("doc-%06d", i)
		}
	}
	if err := sq.AddDocuments(cmd.Context(), docs); err != nil {
		return err
	}
	total, err := sq.Count(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Loaded %d documents (%d total in %s)\n", len(docs), total, database)
	return nil
}
