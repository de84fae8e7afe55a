package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderOpenAI is the OpenAI embeddings endpoint over plain HTTP.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOpenAISDK is the OpenAI embeddings endpoint through the go-openai client.
	AIProviderOpenAISDK AIProvider = "openai-sdk"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderOpenAISDK, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderOpenAISDK
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud, HTTP)"
	case AIProviderOpenAISDK:
		return "OpenAI (cloud, SDK)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// ChunkUnit selects how the chunk size budget is measured.
type ChunkUnit string

const (
	// ChunkUnitCharacters counts word characters plus one separator per word.
	ChunkUnitCharacters ChunkUnit = "characters"

	// ChunkUnitWords counts words.
	ChunkUnitWords ChunkUnit = "words"
)

// IsValid returns true if the unit is recognised.
func (u ChunkUnit) IsValid() bool {
	return u == ChunkUnitCharacters || u == ChunkUnitWords
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey is the bearer credential for cloud providers.
	APIKey string

	// Timeout bounds a single embedding request.
	Timeout time.Duration

	// GlobalSpacing spaces calls across all concurrent ingestions
	// instead of per ingestion stream.
	GlobalSpacing bool
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds chunker configuration.
type ChunkingSettings struct {
	Size    int
	Overlap int
	Unit    ChunkUnit
}

// IngestSettings holds the embedding retry policy and ingestion fan-out.
type IngestSettings struct {
	// MaxAttempts is the number of embedding attempts per chunk.
	MaxAttempts int

	// RetryDelay is the wait between failed attempts.
	RetryDelay time.Duration

	// SuccessDelay is the pause after every successful embedding call.
	SuccessDelay time.Duration

	// Concurrency bounds how many documents ingest at once.
	Concurrency int
}

// RetrievalSettings holds query-time configuration.
type RetrievalSettings struct {
	Limit int
}

// Settings holds all application settings.
type Settings struct {
	Embedding EmbeddingSettings
	Chunking  ChunkingSettings
	Ingest    IngestSettings
	Retrieval RetrievalSettings
}

// DefaultSettings returns settings matching the reference embedding setup.
func DefaultSettings() Settings {
	return Settings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    DefaultEmbeddingModels()[AIProviderOpenAI],
			Timeout:  30 * time.Second,
		},
		Chunking: ChunkingSettings{
			Size:    1000,
			Overlap: 200,
			Unit:    ChunkUnitCharacters,
		},
		Ingest: IngestSettings{
			MaxAttempts:  3,
			RetryDelay:   time.Second,
			SuccessDelay: 200 * time.Millisecond,
			Concurrency:  2,
		},
		Retrieval: RetrievalSettings{
			Limit: DefaultRetrievalLimit,
		},
	}
}

// Validate checks settings for values the services cannot run with.
func (s Settings) Validate() error {
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidInput, s.Embedding.Provider)
	}
	if s.Embedding.Timeout <= 0 {
		return fmt.Errorf("%w: embedding timeout must be positive", ErrInvalidInput)
	}
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if s.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative", ErrInvalidInput)
	}
	if s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap must be smaller than chunk size", ErrInvalidInput)
	}
	if !s.Chunking.Unit.IsValid() {
		return fmt.Errorf("%w: unknown chunk unit %q", ErrInvalidInput, s.Chunking.Unit)
	}
	if s.Ingest.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidInput)
	}
	if s.Ingest.RetryDelay < 0 || s.Ingest.SuccessDelay < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidInput)
	}
	if s.Ingest.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidInput)
	}
	if s.Retrieval.Limit < 1 {
		return fmt.Errorf("%w: retrieval limit must be at least 1", ErrInvalidInput)
	}
	return nil
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderOpenAISDK,
		AIProviderOllama,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    "text-embedding-ada-002",
		AIProviderOpenAISDK: "text-embedding-ada-002",
		AIProviderOllama:    "nomic-embed-text",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
