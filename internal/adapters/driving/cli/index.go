package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the vector index from stored chunks",
	Long: `Clears the in-memory vector index and replays every stored chunk
embedding in creation order. No embedding calls are made.`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	n, err := indexService.Rebuild(commandContext(cmd))
	cmd.Printf("Indexed %d chunks.\n", n)
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	return nil
}
