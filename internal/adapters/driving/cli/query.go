package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question over the collection",
	Long: `Retrieves the chunks most relevant to the question and composes an
answer. When the generation server is reachable the answer is synthesised
from the retrieved material; otherwise the retrieved material itself is
presented, ranked by similarity.

If the collection is empty, the configured docs directory is ingested
first.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	ctx := cmd.Context()

	// First run convenience: populate an empty collection from the
	// configured docs directory. A non-empty collection is left alone.
	if ingestService != nil && docsDir != "" {
		summary, loaded, err := ingestService.AutoLoad(ctx, docsDir)
		if err != nil {
			return fmt.Errorf("auto-load documents: %w", err)
		}
		if loaded {
			cmd.Printf("Loaded %d documents (%d chunks) from %s.\n\n",
				summary.DocumentsProcessed, summary.ChunksAdded, docsDir)
		}
	}

	answer, results, err := assistantService.Query(ctx, args[0])
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	cmd.Println(answer)

	if len(results) > 0 {
		cmd.Println()
		cmd.Println(styleHeading.Render("References:"))
		for _, r := range results {
			cmd.Printf("  %s %s\n",
				styleSource.Render(r.Source),
				styleScore.Render(fmt.Sprintf("(similarity %.3f)", r.Similarity())))
		}
	}
	return nil
}
