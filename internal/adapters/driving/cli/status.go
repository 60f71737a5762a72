package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection and backend status",
	Long: `Reports the collection location and size, the documents it holds,
the embedding model, and whether the generation server is reachable,
including the models it serves.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()

	docs, err := ingestService.Documents(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	cmd.Println(styleHeading.Render("Collection"))
	cmd.Printf("  name:      %s\n", collectionName)
	if storePath != "" {
		cmd.Printf("  store:     %s\n", storePath)
	}
	cmd.Printf("  documents: %d\n", len(docs))
	for _, d := range docs {
		cmd.Printf("    - %s (%s)\n", d.Name, d.Path)
	}

	if embeddingService != nil {
		cmd.Println()
		cmd.Println(styleHeading.Render("Embedding"))
		cmd.Printf("  model:      %s\n", embeddingService.ModelName())
		cmd.Printf("  dimensions: %d\n", embeddingService.Dimensions())
	}

	cmd.Println()
	cmd.Println(styleHeading.Render("Generation"))
	if generationService == nil {
		cmd.Println("  " + styleWarn.Render("not configured"))
		return nil
	}
	if generationURL != "" {
		cmd.Printf("  endpoint: %s\n", generationURL)
	}

	models, err := generationService.Models(ctx)
	if err != nil {
		cmd.Println("  " + styleWarn.Render("unreachable: "+err.Error()))
		cmd.Println("  answers will use the retrieval fallback")
		return nil
	}

	cmd.Println("  " + styleOK.Render("reachable"))
	preferred := generationService.ModelName()
	for _, m := range models {
		if m == preferred {
			cmd.Printf("  - %s (preferred)\n", m)
		} else {
			cmd.Printf("  - %s\n", m)
		}
	}
	return nil
}
