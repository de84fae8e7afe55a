package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

type storedChunk struct {
	chunk domain.Chunk
	seq   uint64
}

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu      sync.RWMutex
	chunks  map[string]storedChunk
	nextSeq uint64
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string]storedChunk),
	}
}

// Save stores or replaces a chunk. Replacing keeps the original save order.
func (s *ChunkStore) Save(_ context.Context, chunk *domain.Chunk) error {
	c := *chunk
	if chunk.Embedding != nil {
		c.Embedding = make([]float32, len(chunk.Embedding))
		copy(c.Embedding, chunk.Embedding)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.nextSeq
	if existing, ok := s.chunks[c.ID]; ok {
		seq = existing.seq
	} else {
		s.nextSeq++
	}
	s.chunks[c.ID] = storedChunk{chunk: c, seq: seq}
	return nil
}

// GetChunk retrieves a chunk by ID.
func (s *ChunkStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := stored.chunk
	return &c, nil
}

// ListByDocument returns a document's chunks ordered by position, then save order.
func (s *ChunkStore) ListByDocument(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stored []storedChunk
	for _, sc := range s.chunks {
		if sc.chunk.DocumentID == documentID {
			stored = append(stored, sc)
		}
	}
	sort.Slice(stored, func(i, j int) bool {
		if stored[i].chunk.Position != stored[j].chunk.Position {
			return stored[i].chunk.Position < stored[j].chunk.Position
		}
		return stored[i].seq < stored[j].seq
	})
	var result []domain.Chunk
	for i := range stored {
		result = append(result, stored[i].chunk)
	}
	return result, nil
}

// FetchAllWithEmbeddings returns embedded chunks in save order.
func (s *ChunkStore) FetchAllWithEmbeddings(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := make([]storedChunk, 0, len(s.chunks))
	for _, sc := range s.chunks {
		if sc.chunk.HasEmbedding() {
			stored = append(stored, sc)
		}
	}
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].seq < stored[j].seq
	})
	result := make([]domain.Chunk, len(stored))
	for i := range stored {
		result[i] = stored[i].chunk
	}
	return result, nil
}

// Delete removes a chunk.
func (s *ChunkStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, id)
	return nil
}
