package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService rebuilds the in-memory vector index from persisted chunks.
type IndexService struct {
	chunkStore driven.ChunkStore
	index      driven.VectorIndex
}

// NewIndexService creates a new index service.
func NewIndexService(chunkStore driven.ChunkStore, index driven.VectorIndex) *IndexService {
	return &IndexService{chunkStore: chunkStore, index: index}
}

// Rebuild clears the index and replays every embedded chunk in save order.
// Chunks whose vector length does not match the index are skipped; the
// returned count covers only indexed chunks and the error joins one
// DimensionMismatchError per skipped chunk. Any other failure aborts.
func (s *IndexService) Rebuild(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domain.ErrVectorIndexUnavailable
	}
	defer logger.Timer("Rebuild vector index")()

	chunks, err := s.chunkStore.FetchAllWithEmbeddings(ctx)
	if err != nil {
		return 0, &domain.StorageError{Op: "fetch chunks", Err: err}
	}

	if err := s.index.Reset(); err != nil {
		return 0, fmt.Errorf("reset index: %w", err)
	}

	indexed := 0
	var skipped []error
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		err := s.index.Upsert(ctx, chunk.ID, chunk.Embedding)
		var mismatch *domain.DimensionMismatchError
		switch {
		case err == nil:
			indexed++
		case errors.As(err, &mismatch):
			skipped = append(skipped, fmt.Errorf("index chunk %s: %w", chunk.ID, err))
		default:
			return indexed, fmt.Errorf("index chunk %s: %w", chunk.ID, err)
		}
	}

	logger.Debug("Rebuilt vector index with %d vectors, skipped %d", indexed, len(skipped))
	if len(skipped) > 0 {
		return indexed, fmt.Errorf("skipped %d of %d stored vectors: %w", len(skipped), len(chunks), errors.Join(skipped...))
	}
	return indexed, nil
}
