// Package cli implements the kotae command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
	"github.com/kotae-labs/kotae-cli/internal/core/ports/driving"
	"github.com/kotae-labs/kotae-cli/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Services injected by main before Execute. Commands check for nil and
// fail with a clear error, which also keeps them testable in isolation.
var (
	ingestService     driving.IngestService
	assistantService  driving.Assistant
	embeddingService  driven.EmbeddingService
	generationService driven.GenerationService
)

// Deployment facts the commands print but cannot derive from the
// service interfaces.
var (
	docsDir        string
	storePath      string
	collectionName string
	generationURL  string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kotae",
	Short: "Ask questions over a local document collection",
	Long: `kotae ingests local documents into an embedded vector collection
and answers questions over them, using a local OpenAI-compatible server
(such as LM Studio) for embeddings and answer generation.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest     driving.IngestService
	Assistant  driving.Assistant
	Embedding  driven.EmbeddingService
	Generation driven.GenerationService

	DocsDir       string
	StorePath     string
	Collection    string
	GenerationURL string
}

// SetServices wires the service implementations into the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	assistantService = s.Assistant
	embeddingService = s.Embedding
	generationService = s.Generation
	docsDir = s.DocsDir
	storePath = s.StorePath
	collectionName = s.Collection
	generationURL = s.GenerationURL
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
