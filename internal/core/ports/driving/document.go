package driving

import (
	"context"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// DocumentService manages the user's documents and their processing.
type DocumentService interface {
	// AddFile imports a UTF-8 text file as an unprocessed document.
	AddFile(ctx context.Context, path string) (*domain.Document, error)

	// AddText stores a manually entered text as an unprocessed document.
	AddText(ctx context.Context, title, content string) (*domain.Document, error)

	// Process ingests a document and marks it processed on success.
	Process(ctx context.Context, id string, progress domain.ProgressFunc) error

	// ProcessAll processes several documents concurrently.
	ProcessAll(ctx context.Context, ids []string, progress domain.DocumentProgressFunc) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document, its chunks and their vectors.
	Delete(ctx context.Context, id string) error

	// DeleteByPath removes the file document imported from path, if any.
	DeleteByPath(ctx context.Context, path string) error
}

// IndexService maintains the derived vector index.
type IndexService interface {
	// Rebuild clears the index and replays every persisted embedded chunk.
	// Returns the number of vectors indexed.
	Rebuild(ctx context.Context) (int, error)
}
