package driven

import (
	"context"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// DocumentStore persists documents.
type DocumentStore interface {
	// SaveDocument inserts or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if missing.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByPath retrieves a file document by its on-disk path.
	// Returns domain.ErrNotFound if missing.
	GetDocumentByPath(ctx context.Context, path string) (*domain.Document, error)

	// ListDocuments returns all documents, oldest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document. Its chunks are not touched.
	DeleteDocument(ctx context.Context, id string) error
}

// ChunkStore persists chunks and their vectors.
// It is the source of truth the VectorIndex is rebuilt from.
type ChunkStore interface {
	// Save inserts or replaces a chunk.
	Save(ctx context.Context, chunk *domain.Chunk) error

	// GetChunk retrieves a chunk by ID.
	// Returns domain.ErrNotFound if missing.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListByDocument returns a document's chunks ordered by position.
	ListByDocument(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// FetchAllWithEmbeddings returns every chunk carrying a vector,
	// in the order the chunks were first saved.
	FetchAllWithEmbeddings(ctx context.Context) ([]domain.Chunk, error)

	// Delete removes a chunk. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error
}
