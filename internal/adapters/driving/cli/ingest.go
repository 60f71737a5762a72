package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestRebuild bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest documents into the collection",
	Long: `Reads the markdown and text documents under the given directory
(default: the configured docs directory), splits them into chunks, embeds
each chunk and stores it. Ingestion is idempotent: chunks already in the
collection are skipped, so re-running after adding documents only embeds
what is new.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "reset the collection before ingesting")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	root := docsDir
	if len(args) == 1 {
		root = args[0]
	}
	if root == "" {
		return errors.New("no document directory given and none configured")
	}

	ctx := cmd.Context()

	if ingestRebuild {
		if err := ingestService.Reset(ctx); err != nil {
			return fmt.Errorf("reset collection: %w", err)
		}
		cmd.Println("Collection reset.")
	}

	paths, err := ingestService.Discover(root)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}
	if len(paths) == 0 {
		cmd.Printf("No documents found under %s.\n", root)
		return nil
	}

	summary, err := ingestService.Ingest(ctx, paths)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	cmd.Printf("Ingested %d documents: %d new chunks, %d skipped.\n",
		summary.DocumentsProcessed, summary.ChunksAdded, summary.DocumentsSkipped)
	for _, e := range summary.Errors {
		cmd.Println(styleWarn.Render("  skipped: " + e))
	}
	return nil
}
