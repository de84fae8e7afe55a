// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations report failures using the domain error taxonomy:
// *domain.TransportError for network failures and timeouts,
// *domain.ProviderError for non-success responses and
// *domain.MalformedResponseError for a success response without a usable vector.
// Retrying is the caller's concern.
//
// Implementations may include:
//   - OpenAI over plain HTTP (text-embedding-ada-002)
//   - OpenAI through the go-openai client
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// The returned vector always has Dimensions() elements.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	// This is determined by the model and must match the VectorIndex dimension.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
