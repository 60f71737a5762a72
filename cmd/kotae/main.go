package main

import (
	"fmt"
	"os"

	embeddingollama "github.com/kotae-labs/kotae-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/kotae-labs/kotae-cli/internal/adapters/driven/embedding/openai"
	generationopenai "github.com/kotae-labs/kotae-cli/internal/adapters/driven/generation/openai"
	"github.com/kotae-labs/kotae-cli/internal/adapters/driven/storage/sqlite"
	"github.com/kotae-labs/kotae-cli/internal/adapters/driving/cli"
	"github.com/kotae-labs/kotae-cli/internal/chunker"
	"github.com/kotae-labs/kotae-cli/internal/config"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
	"github.com/kotae-labs/kotae-cli/internal/core/services"
	"github.com/kotae-labs/kotae-cli/internal/reporter"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kotae: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("KOTAE_CONFIG"))
	if err != nil {
		return err
	}

	// A store that cannot open is fatal: nothing works without it.
	store, err := sqlite.NewStore(cfg.DataDir, cfg.Collection)
	if err != nil {
		return fmt.Errorf("open chunk store: %w", err)
	}
	defer store.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	generationURL := cfg.Generation.BaseURL
	generator := generationopenai.NewGenerationService(generationopenai.Config{
		BaseURL: cfg.Generation.BaseURL,
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
	})
	defer generator.Close()

	progress := reporter.NewStream(os.Stderr)

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSize),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)

	ingest := services.NewIngestService(store, embedder, splitter,
		services.WithReporter(progress),
		services.WithEmbedRateLimit(cfg.Embedding.RateLimit),
	)
	assistant := services.NewAssistantService(store, embedder, generator,
		services.WithTopK(cfg.Search.TopK),
		services.WithMaxTokens(cfg.Generation.MaxTokens),
		services.WithAssistantReporter(progress),
	)

	cli.SetServices(cli.Services{
		Ingest:        ingest,
		Assistant:     assistant,
		Embedding:     embedder,
		Generation:    generator,
		DocsDir:       cfg.DocsDir,
		StorePath:     store.Path(),
		Collection:    store.Collection(),
		GenerationURL: generationURL,
	})

	return cli.Execute(version)
}

func newEmbedder(cfg *config.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			BaseURL: cfg.Embedding.BaseURL,
			APIKey:  cfg.Embedding.APIKey,
			Model:   cfg.Embedding.Model,
		}), nil
	case "ollama":
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}
