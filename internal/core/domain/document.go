package domain

import "time"

// DocumentKind distinguishes where a document's text came from.
type DocumentKind string

const (
	// DocumentKindFile is a text file imported from disk.
	DocumentKindFile DocumentKind = "file"

	// DocumentKindManual is a text entered by the user.
	DocumentKindManual DocumentKind = "manual"
)

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindFile || k == DocumentKindManual
}

// DocumentState is the binary processing state of a document.
type DocumentState string

const (
	// DocumentUnprocessed means the document has not been fully ingested.
	DocumentUnprocessed DocumentState = "unprocessed"

	// DocumentProcessed means every chunk was embedded and persisted.
	DocumentProcessed DocumentState = "processed"
)

// Document is a unit of source text owned by the user.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Kind records whether this is an imported file or a manual text.
	Kind DocumentKind

	// Title is the file name for imports, or the user-given title.
	Title string

	// Path is the on-disk location for file documents. Empty for manual texts.
	Path string

	// Content is the full text before chunking.
	Content string

	// Size is the content length in bytes.
	Size int64

	// State is the processing state.
	State DocumentState

	// CreatedAt is when the document was added.
	CreatedAt time.Time

	// UpdatedAt is when the document or its state last changed.
	UpdatedAt time.Time
}

// IsProcessed reports whether ingestion completed for this document.
func (d *Document) IsProcessed() bool {
	return d.State == DocumentProcessed
}

// Chunk is a contiguous span of document text.
// Once an embedding is attached the chunk is never mutated.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Position is the creation order within the document, starting at 0.
	Position int

	// Embedding is the vector for this chunk, nil until attached.
	Embedding []float32

	// CreatedAt is when the chunk was persisted.
	CreatedAt time.Time
}

// HasEmbedding reports whether a vector is attached.
func (c *Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}
