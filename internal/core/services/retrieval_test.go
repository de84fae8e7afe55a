package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/storage/memory"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/vector/flat"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// seedChunks saves embedded chunks and indexes them in order.
func seedChunks(t *testing.T, store *memory.ChunkStore, index *flat.Index, chunks ...domain.Chunk) {
	t.Helper()
	ctx := context.Background()
	for i := range chunks {
		require.NoError(t, store.Save(ctx, &chunks[i]))
		require.NoError(t, index.Upsert(ctx, chunks[i].ID, chunks[i].Embedding))
	}
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	store := memory.NewChunkStore()
	index := flat.New(2)
	seedChunks(t, store, index,
		domain.Chunk{ID: "far", DocumentID: "d", Content: "far", Embedding: []float32{0, 1}},
		domain.Chunk{ID: "near", DocumentID: "d", Content: "near", Embedding: []float32{1, 0.1}},
		domain.Chunk{ID: "mid", DocumentID: "d", Content: "mid", Embedding: []float32{1, 1}},
	)

	embedder := newMockEmbedder(2)
	embedder.embedFn = func(int, string) ([]float32, error) { return []float32{1, 0}, nil }
	svc := NewRetrievalService(embedder, index, store)

	matches, err := svc.Retrieve(context.Background(), "query", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "near", matches[0].Chunk.ID)
	assert.Equal(t, "mid", matches[1].Chunk.ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, 1, embedder.callCount())
}

func TestRetrieve_DefaultLimit(t *testing.T) {
	store := memory.NewChunkStore()
	index := flat.New(2)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedChunks(t, store, index, domain.Chunk{ID: id, DocumentID: "d", Embedding: []float32{1, 0}})
	}
	svc := NewRetrievalService(newMockEmbedder(2), index, store)

	matches, err := svc.Retrieve(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Len(t, matches, domain.DefaultRetrievalLimit)
	// Equal scores keep insertion order.
	assert.Equal(t, "a", matches[0].Chunk.ID)
	assert.Equal(t, "c", matches[2].Chunk.ID)

	svc.SetDefaultLimit(4)
	matches, err = svc.Retrieve(context.Background(), "query", -1)
	require.NoError(t, err)
	assert.Len(t, matches, 4)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	embedder := newMockEmbedder(2)
	svc := NewRetrievalService(embedder, flat.New(0), memory.NewChunkStore())

	matches, err := svc.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	embedder := newMockEmbedder(2)
	svc := NewRetrievalService(embedder, flat.New(2), memory.NewChunkStore())

	matches, err := svc.Retrieve(context.Background(), "   ", 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 0, embedder.callCount())
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	store := memory.NewChunkStore()
	index := flat.New(2)
	seedChunks(t, store, index, domain.Chunk{ID: "a", DocumentID: "d", Embedding: []float32{1, 0}})

	embedder := newMockEmbedder(2)
	embedder.embedFn = func(int, string) ([]float32, error) {
		return nil, &domain.TransportError{Cause: errors.New("no route to host")}
	}
	svc := NewRetrievalService(embedder, index, store)

	matches, err := svc.Retrieve(context.Background(), "query", 3)
	require.Error(t, err)
	assert.Nil(t, matches)

	var transport *domain.TransportError
	assert.ErrorAs(t, err, &transport)
	assert.Equal(t, 1, embedder.callCount(), "no retry loop at query time")
}

func TestRetrieve_SkipsChunksMissingFromStore(t *testing.T) {
	store := memory.NewChunkStore()
	index := flat.New(2)
	seedChunks(t, store, index,
		domain.Chunk{ID: "kept", DocumentID: "d", Embedding: []float32{1, 0}},
		domain.Chunk{ID: "gone", DocumentID: "d", Embedding: []float32{1, 0}},
	)
	require.NoError(t, store.Delete(context.Background(), "gone"))

	svc := NewRetrievalService(newMockEmbedder(2), index, store)
	matches, err := svc.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "kept", matches[0].Chunk.ID)
}

func TestRetrieve_Unavailable(t *testing.T) {
	_, err := NewRetrievalService(nil, flat.New(2), memory.NewChunkStore()).Retrieve(context.Background(), "q", 1)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	_, err = NewRetrievalService(newMockEmbedder(2), nil, memory.NewChunkStore()).Retrieve(context.Background(), "q", 1)
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
}
