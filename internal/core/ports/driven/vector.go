package driven

import "context"

// VectorIndex provides exact semantic similarity search over chunk vectors.
// The index is derived state: it can always be rebuilt from the ChunkStore.
type VectorIndex interface {
	// Upsert inserts or replaces the vector for a chunk ID.
	// Replacing keeps the entry's original insertion order.
	// A vector whose length differs from Dimension() is rejected with
	// *domain.DimensionMismatchError.
	Upsert(ctx context.Context, chunkID string, embedding []float32) error

	// Remove deletes a vector. Removing an absent ID is not an error.
	Remove(ctx context.Context, chunkID string) error

	// Search returns up to k hits ordered by descending cosine similarity.
	// Ties keep insertion order. k <= 0 or an empty index yields no hits.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Dimension returns the fixed vector length, or 0 before the first upsert.
	Dimension() int

	// Reset drops every vector, keeping the configured dimension.
	Reset() error

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score in [-1, 1].
	Similarity float64
}
