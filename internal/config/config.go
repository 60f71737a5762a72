// Package config loads kotae configuration. Values are layered:
// built-in defaults, then ~/.kotae/config.toml when present, then
// KOTAE_* environment variables. A .env file in the working directory
// is honoured before the environment is read.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// envPrefix namespaces the environment overrides: KOTAE_DOCS_DIR,
// KOTAE_EMBEDDING_BASE_URL and so on.
const envPrefix = "kotae"

// Config is the full kotae configuration.
type Config struct {
	// DataDir holds the SQLite collection. Empty means ~/.kotae/data.
	DataDir string `toml:"data_dir" envconfig:"DATA_DIR"`

	// Collection names the chunk collection inside DataDir.
	Collection string `toml:"collection" envconfig:"COLLECTION"`

	// DocsDir is the directory scanned for documents to ingest.
	DocsDir string `toml:"docs_dir" envconfig:"DOCS_DIR"`

	Chunking   Chunking   `toml:"chunking"`
	Embedding  Embedding  `toml:"embedding"`
	Generation Generation `toml:"generation"`
	Search     Search     `toml:"search"`
}

// Chunking controls the document splitter.
type Chunking struct {
	ChunkSize int `toml:"chunk_size" envconfig:"CHUNK_SIZE"`
	Overlap   int `toml:"overlap" envconfig:"OVERLAP"`
}

// Embedding configures the embedding backend.
type Embedding struct {
	// Provider selects the adapter: "openai" or "ollama".
	Provider string `toml:"provider" envconfig:"PROVIDER"`
	BaseURL  string `toml:"base_url" envconfig:"BASE_URL"`
	Model    string `toml:"model" envconfig:"MODEL"`
	APIKey   string `toml:"api_key" envconfig:"API_KEY"`

	// RateLimit caps embedding calls per second during ingestion.
	// Zero disables the limiter.
	RateLimit float64 `toml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// Generation configures the answer generation backend.
type Generation struct {
	BaseURL   string `toml:"base_url" envconfig:"BASE_URL"`
	Model     string `toml:"model" envconfig:"MODEL"`
	APIKey    string `toml:"api_key" envconfig:"API_KEY"`
	MaxTokens int    `toml:"max_tokens" envconfig:"MAX_TOKENS"`
}

// Search configures retrieval.
type Search struct {
	TopK int `toml:"top_k" envconfig:"TOP_K"`
}

// Default returns the built-in configuration. The endpoint defaults
// match a local LM Studio server.
func Default() Config {
	return Config{
		Collection: "sales_knowledge",
		DocsDir:    "docs",
		Chunking: Chunking{
			ChunkSize: 1000,
			Overlap:   200,
		},
		// Embedding URL and model are left empty so the selected
		// adapter can apply its own provider defaults.
		Embedding: Embedding{
			Provider: "openai",
		},
		Generation: Generation{
			BaseURL:   "http://localhost:1234/v1",
			Model:     "gpt-oss-20b",
			MaxTokens: 400,
		},
		Search: Search{
			TopK: 5,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.kotae/config.toml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kotae", "config.toml")
}

// Load builds the configuration from defaults, the TOML file at path
// and the environment, in that order. An empty path means DefaultPath;
// a missing file is not an error.
func Load(path string) (*Config, error) {
	// Env vars set in the shell win over the .env file.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("%w: collection must not be empty", ErrInvalidConfig)
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunking.chunk_size must be positive", ErrInvalidConfig)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: chunking.overlap must not be negative", ErrInvalidConfig)
	}
	if c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("%w: chunking.overlap must be smaller than chunking.chunk_size", ErrInvalidConfig)
	}
	switch c.Embedding.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, c.Embedding.Provider)
	}
	if c.Search.TopK <= 0 {
		return fmt.Errorf("%w: search.top_k must be positive", ErrInvalidConfig)
	}
	if c.Generation.MaxTokens <= 0 {
		return fmt.Errorf("%w: generation.max_tokens must be positive", ErrInvalidConfig)
	}
	return nil
}
