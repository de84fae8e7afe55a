package driving

import (
	"context"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// RetrievalService answers similarity queries over ingested chunks.
type RetrievalService interface {
	// Retrieve embeds the query and returns up to limit matches in
	// descending similarity. limit <= 0 uses domain.DefaultRetrievalLimit.
	Retrieve(ctx context.Context, query string, limit int) ([]domain.SimilarityMatch, error)
}
