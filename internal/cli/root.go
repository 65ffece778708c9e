// Package cli wires the semsearch commands: loading a corpus, ranking
// queries against it, clustering it, and summarizing its composition.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/semsearch/config"
	"github.com/viant/semsearch/engine"
	"github.com/viant/semsearch/internal/logger"
	"github.com/viant/semsearch/store"
)

var (
	cfgPath string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "semsearch",
	Short:         "Semantic similarity search and clustering over embedded documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return fmt.Errorf("load config %s: %w", cfgPath, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "semsearch.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openSnapshot builds a corpus snapshot from whichever source the config
// names: the SQLite database when set, otherwise the flat embedding and
// metadata files.
func openSnapshot(cmd *cobra.Command) (*store.Store, error) {
	if cfg.Corpus.Database != "" {
		db, err := engine.Open(cfg.Corpus.Database)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", cfg.Corpus.Database, err)
		}
		defer db.Close()
		sq, err := store.NewSQLite(db)
		if err != nil {
			return nil, err
		}
		return sq.Snapshot(cmd.Context())
	}
	if cfg.Corpus.Embeddings == "" {
		return nil, fmt.Errorf("no corpus configured: set corpus.database or corpus.embeddings")
	}
	if cfg.Corpus.Dimension <= 0 {
		return nil, fmt.Errorf("corpus.dimension must be positive for flat-file corpora")
	}
	return store.LoadFiles(cfg.Corpus.Embeddings, cfg.Corpus.Dimension, cfg.Corpus.Metadata)
}
