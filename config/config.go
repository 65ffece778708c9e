// Package config loads the engine configuration from YAML, falling back to
// defaults when no file is present.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/semsearch/cluster"
	"github.com/viant/semsearch/search"
)

// SearchConfig holds default query parameters. Threshold is a pointer so an
// explicit 0 in the file is distinguishable from an absent value.
type SearchConfig struct {
	K         int      `yaml:"k"`
	Threshold *float64 `yaml:"threshold"`
}

// ClusterConfig holds clustering parameters; zero values defer to the
// cluster package defaults.
type ClusterConfig struct {
	// Clusters is the default k used when no optimal-k sweep ran or the
	// sweep produced no valid score.
	Clusters      int   `yaml:"clusters"`
	MaxK          int   `yaml:"max_k"`
	ReducedDim    int   `yaml:"reduced_dim"`
	Restarts      int   `yaml:"restarts"`
	MaxIterations int   `yaml:"max_iterations"`
	SampleSize    int   `yaml:"sample_size"`
	Seed          int64 `yaml:"seed"`
}

// CorpusConfig locates the corpus sources.
type CorpusConfig struct {
	// Database is the SQLite corpus path; when set it takes precedence
	// over the flat-file pair below.
	Database string `yaml:"database"`
	// Embeddings is a flat file of row-major little-endian float32 rows.
	Embeddings string `yaml:"embeddings"`
	// Dimension is the embedding dimension of the flat file.
	Dimension int `yaml:"dimension"`
	// Metadata is an optional JSON array aligned with the embeddings.
	Metadata string `yaml:"metadata"`
}

// Config is the root configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Cluster ClusterConfig `yaml:"cluster"`
	Corpus  CorpusConfig  `yaml:"corpus"`
}

// Load reads a config from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ClusterSettings converts the cluster section into an analyzer config.
func (c *Config) ClusterSettings() cluster.Config {
	return cluster.Config{
		ReducedDim:    c.Cluster.ReducedDim,
		Restarts:      c.Cluster.Restarts,
		MaxIterations: c.Cluster.MaxIterations,
		SampleSize:    c.Cluster.SampleSize,
		Seed:          c.Cluster.Seed,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Search.K <= 0 {
		cfg.Search.K = search.DefaultK
	}
	if cfg.Search.Threshold == nil {
		threshold := search.DefaultThreshold
		cfg.Search.Threshold = &threshold
	}
	if cfg.Cluster.Clusters <= 0 {
		cfg.Cluster.Clusters = 10
	}
	if cfg.Cluster.MaxK <= 0 {
		cfg.Cluster.MaxK = 15
	}
	if cfg.Cluster.ReducedDim <= 0 {
		cfg.Cluster.ReducedDim = cluster.DefaultReducedDim
	}
	if cfg.Cluster.Restarts <= 0 {
		cfg.Cluster.Restarts = cluster.DefaultRestarts
	}
	if cfg.Cluster.MaxIterations <= 0 {
		cfg.Cluster.MaxIterations = cluster.DefaultMaxIterations
	}
	if cfg.Cluster.SampleSize <= 0 {
		cfg.Cluster.SampleSize = cluster.DefaultSampleSize
	}
	if cfg.Cluster.Seed == 0 {
		cfg.Cluster.Seed = cluster.DefaultSeed
	}
}
