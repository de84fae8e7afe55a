package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService embeds queries and resolves the nearest chunks.
type RetrievalService struct {
	embedder     driven.EmbeddingService
	index        driven.VectorIndex
	chunkStore   driven.ChunkStore
	defaultLimit int
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	chunkStore driven.ChunkStore,
) *RetrievalService {
	return &RetrievalService{
		embedder:     embedder,
		index:        index,
		chunkStore:   chunkStore,
		defaultLimit: domain.DefaultRetrievalLimit,
	}
}

// SetDefaultLimit sets the limit used when Retrieve is called with limit <= 0.
func (s *RetrievalService) SetDefaultLimit(limit int) {
	if limit > 0 {
		s.defaultLimit = limit
	}
}

// Retrieve embeds the query once and returns up to limit matches, most similar first.
// An embedding failure fails the whole call. Chunks deleted between the
// search and their lookup are skipped.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, limit int) ([]domain.SimilarityMatch, error) {
	logger.Section("Retrieve")
	logger.Debug("Query: %q", query)

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SimilarityMatch{}, nil
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if s.index.Len() == 0 {
		logger.Debug("Vector index is empty")
		return []domain.SimilarityMatch{}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, queryVec, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search returned %d hits", len(hits))

	matches := make([]domain.SimilarityMatch, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.chunkStore.GetChunk(ctx, hit.ChunkID)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Chunk %s no longer exists, skipping", hit.ChunkID)
			continue
		}
		if err != nil {
			return nil, &domain.StorageError{Op: "get chunk", Err: err}
		}
		matches = append(matches, domain.SimilarityMatch{Chunk: *chunk, Score: hit.Similarity})
	}

	return matches, nil
}
