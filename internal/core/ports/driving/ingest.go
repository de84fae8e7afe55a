package driving

import (
	"context"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// IngestionService turns a document's text into embedded, indexed chunks.
type IngestionService interface {
	// Ingest chunks, embeds, persists and indexes one document.
	// progress may be nil; when set it receives monotonically increasing
	// fractions ending at 1.0 on success.
	Ingest(ctx context.Context, doc *domain.Document, progress domain.ProgressFunc) error
}
