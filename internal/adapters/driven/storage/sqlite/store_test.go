package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDocumentStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:        "doc-1",
		Kind:      domain.DocumentKindFile,
		Title:     "notes.txt",
		Path:      "/home/me/notes.txt",
		Content:   "alpha beta gamma",
		Size:      16,
		State:     domain.DocumentUnprocessed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Kind, got.Kind)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Path, got.Path)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Size, got.Size)
	assert.Equal(t, domain.DocumentUnprocessed, got.State)
	assert.True(t, now.Equal(got.CreatedAt))

	doc.State = domain.DocumentProcessed
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err = docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, got.IsProcessed())

	byPath, err := docs.GetDocumentByPath(ctx, "/home/me/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", byPath.ID)
}

func TestDocumentStore_NotFound(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	ctx := context.Background()

	_, err := docs.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = docs.GetDocumentByPath(ctx, "/nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListAndDelete(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
			ID:    fmt.Sprintf("doc-%d", i),
			Kind:  domain.DocumentKindManual,
			Title: fmt.Sprintf("Note %d", i),
			State: domain.DocumentUnprocessed,
		}))
	}

	list, err := docs.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "doc-0", list[0].ID)
	assert.Equal(t, "doc-2", list[2].ID)

	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))
	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

	list, err = docs.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestChunkStore_RoundTrip(t *testing.T) {
	chunks := setupTestStore(t).ChunkStore()
	ctx := context.Background()

	chunk := &domain.Chunk{
		ID:         "c1",
		DocumentID: "doc-1",
		Content:    "alpha beta",
		Position:   0,
		Embedding:  []float32{0.25, -1.5, 3},
	}
	require.NoError(t, chunks.Save(ctx, chunk))

	got, err := chunks.GetChunk(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, chunk.Content, got.Content)
	assert.Equal(t, chunk.Embedding, got.Embedding)

	_, err = chunks.GetChunk(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkStore_FetchAllWithEmbeddings_SaveOrder(t *testing.T) {
	chunks := setupTestStore(t).ChunkStore()
	ctx := context.Background()

	require.NoError(t, chunks.Save(ctx, &domain.Chunk{ID: "b", DocumentID: "d", Position: 1, Embedding: []float32{1}}))
	require.NoError(t, chunks.Save(ctx, &domain.Chunk{ID: "bare", DocumentID: "d", Position: 2}))
	require.NoError(t, chunks.Save(ctx, &domain.Chunk{ID: "a", DocumentID: "d", Position: 0, Embedding: []float32{2}}))
	// Re-saving keeps the original sequence.
	require.NoError(t, chunks.Save(ctx, &domain.Chunk{ID: "b", DocumentID: "d", Position: 1, Embedding: []float32{3}}))

	all, err := chunks.FetchAllWithEmbeddings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, []float32{3}, all[0].Embedding)
	assert.Equal(t, "a", all[1].ID)

	byDoc, err := chunks.ListByDocument(ctx, "d")
	require.NoError(t, err)
	require.Len(t, byDoc, 3)
	assert.Equal(t, "a", byDoc[0].ID)
	assert.Equal(t, "b", byDoc[1].ID)
	assert.Equal(t, "bare", byDoc[2].ID)
	assert.Nil(t, byDoc[2].Embedding)
}

func TestChunkStore_Delete(t *testing.T) {
	chunks := setupTestStore(t).ChunkStore()
	ctx := context.Background()

	require.NoError(t, chunks.Save(ctx, &domain.Chunk{ID: "c1", DocumentID: "d", Embedding: []float32{1}}))
	require.NoError(t, chunks.Delete(ctx, "c1"))
	require.NoError(t, chunks.Delete(ctx, "c1"))

	all, err := chunks.FetchAllWithEmbeddings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChunkStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.ChunkStore().Save(ctx, &domain.Chunk{ID: "c1", DocumentID: "d", Embedding: []float32{1, 2}}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.ChunkStore().FetchAllWithEmbeddings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []float32{1, 2}, all[0].Embedding)
}

func TestFloat32Conversion(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 1e-7}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
