package domain

import "strings"

// DefaultRetrievalLimit is the number of matches returned when none is requested.
const DefaultRetrievalLimit = 3

// SimilarityMatch pairs a chunk with its cosine similarity to a query.
// Scores are computed per query and are never persisted.
type SimilarityMatch struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity in [-1, 1].
	Score float64
}

// ProgressFunc receives ingestion progress as a fraction in [0, 1].
type ProgressFunc func(fraction float64)

// DocumentProgressFunc receives ingestion progress for one of several documents.
type DocumentProgressFunc func(documentID string, fraction float64)

// Context block markers used when retrieved chunks are appended to a chat message.
const (
	contextHeader    = "\n\nRelevant context:\n---\n"
	contextSeparator = "\n---\n"
)

// BuildContext formats matches as the context block appended to a chat message,
// most relevant first. No matches yields an empty string.
func BuildContext(matches []SimilarityMatch) string {
	if len(matches) == 0 {
		return ""
	}

	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Chunk.Content
	}
	return contextHeader + strings.Join(parts, contextSeparator)
}
