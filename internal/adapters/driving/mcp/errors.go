// Package mcp serves the knowledge base over the Model Context Protocol
// so assistants can pull related passages into their own prompts.
package mcp

import (
	"errors"
	"fmt"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// toolError rewrites core failures into messages an assistant can relay to
// the user. The original error stays in the chain.
func toolError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return fmt.Errorf("no embedding provider is configured, run 'kbot settings embedding': %w", err)
	case errors.Is(err, domain.ErrInvalidCredential):
		return fmt.Errorf("the embedding provider rejected the API key: %w", err)
	case errors.Is(err, domain.ErrVectorIndexUnavailable):
		return fmt.Errorf("the vector index is not loaded: %w", err)
	}
	return err
}
