package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

var (
	searchLimit   int
	searchJSON    bool
	searchContext bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find the passages most similar to a query",
	Long: `Embeds the query and ranks every stored chunk by cosine similarity.
Use --context to print the block that is appended to a chat message.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = retrieval.limit setting)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchContext, "context", false, "output the chat context block")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON is the --json output shape.
type searchResultJSON struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Position   int     `json:"position"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	matches, err := retrievalService.Retrieve(commandContext(cmd), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch {
	case searchJSON:
		return outputSearchJSON(cmd, matches)
	case searchContext:
		cmd.Println(strings.TrimLeft(domain.BuildContext(matches), "\n"))
		return nil
	default:
		return outputSearchTable(cmd, matches)
	}
}

func outputSearchJSON(cmd *cobra.Command, matches []domain.SimilarityMatch) error {
	results := make([]searchResultJSON, len(matches))
	for i, m := range matches {
		results[i] = searchResultJSON{
			ChunkID:    m.Chunk.ID,
			DocumentID: m.Chunk.DocumentID,
			Position:   m.Chunk.Position,
			Score:      m.Score,
			Content:    m.Chunk.Content,
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, matches []domain.SimilarityMatch) error {
	if len(matches) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, m := range matches {
		// Format: [N] document#position (score)
		cmd.Printf("  [%d] %s#%d (%.3f)\n", i+1, m.Chunk.DocumentID, m.Chunk.Position, m.Score)
		cmd.Printf("      %s\n", snippet(m.Chunk.Content, 160))
		cmd.Println()
	}
	return nil
}

// snippet collapses whitespace and truncates to at most n runes.
func snippet(text string, n int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= n {
		return collapsed
	}
	return string(runes[:n]) + "..."
}
