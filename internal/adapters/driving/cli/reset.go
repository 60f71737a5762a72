package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every chunk and document in the collection",
	Long: `Clears the collection entirely. The next ingest or query rebuilds
it from the docs directory. Requires --force.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "confirm the reset")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if !resetForce {
		return errors.New("reset deletes the whole collection; re-run with --force to confirm")
	}

	if err := ingestService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset collection: %w", err)
	}
	cmd.Println("Collection reset.")
	return nil
}
