package flat

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"scaled", []float32{1, 1}, []float32{5, 5}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestIndex_Upsert_FixesDimension(t *testing.T) {
	ctx := context.Background()
	idx := New(0)

	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0, 0}))
	assert.Equal(t, 3, idx.Dimension())

	err := idx.Upsert(ctx, "b", []float32{1, 0})
	var mismatch *domain.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Expected)
	assert.Equal(t, 2, mismatch.Got)
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_Upsert_Rejects(t *testing.T) {
	ctx := context.Background()
	idx := New(0)

	assert.ErrorIs(t, idx.Upsert(ctx, "", []float32{1}), domain.ErrInvalidInput)
	assert.ErrorIs(t, idx.Upsert(ctx, "a", nil), domain.ErrInvalidInput)

	fixed := New(4)
	var mismatch *domain.DimensionMismatchError
	assert.ErrorAs(t, fixed.Upsert(ctx, "a", []float32{1, 2}), &mismatch)
}

func TestIndex_Upsert_CopiesVector(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	vec := []float32{1, 0}

	require.NoError(t, idx.Upsert(ctx, "a", vec))
	vec[0], vec[1] = 0, 1

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestIndex_Search_Ordering(t *testing.T) {
	ctx := context.Background()
	idx := New(2)

	require.NoError(t, idx.Upsert(ctx, "far", []float32{0, 1}))
	require.NoError(t, idx.Upsert(ctx, "near", []float32{1, 0.1}))
	require.NoError(t, idx.Upsert(ctx, "exact", []float32{2, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "exact", hits[0].ChunkID)
	assert.Equal(t, "near", hits[1].ChunkID)
	assert.Equal(t, "far", hits[2].ChunkID)
	assert.GreaterOrEqual(t, hits[0].Similarity, hits[1].Similarity)
	assert.GreaterOrEqual(t, hits[1].Similarity, hits[2].Similarity)
}

func TestIndex_Search_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := New(2)

	for n := 0; n < 10; n++ {
		require.NoError(t, idx.Upsert(ctx, fmt.Sprintf("c%d", n), []float32{1, 1}))
	}

	hits, err := idx.Search(ctx, []float32{3, 3}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 10)
	for n, hit := range hits {
		assert.Equal(t, fmt.Sprintf("c%d", n), hit.ChunkID)
	}
}

func TestIndex_Upsert_ReplaceKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := New(2)

	require.NoError(t, idx.Upsert(ctx, "first", []float32{0, 1}))
	require.NoError(t, idx.Upsert(ctx, "second", []float32{1, 0}))
	require.NoError(t, idx.Upsert(ctx, "first", []float32{1, 0}))

	assert.Equal(t, 2, idx.Len())

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].ChunkID)
	assert.Equal(t, "second", hits[1].ChunkID)
}

func TestIndex_Search_Limits(t *testing.T) {
	ctx := context.Background()
	idx := New(2)

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Upsert(ctx, "b", []float32{0, 1}))

	hits, err = idx.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	_, err = idx.Search(ctx, []float32{1, 0, 0}, 1)
	var mismatch *domain.DimensionMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestIndex_Search_ZeroQueryScoresZero(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 0.0, hits[0].Similarity)
}

func TestIndex_Remove(t *testing.T) {
	ctx := context.Background()
	idx := New(2)
	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Upsert(ctx, "b", []float32{0, 1}))

	require.NoError(t, idx.Remove(ctx, "a"))
	require.NoError(t, idx.Remove(ctx, "missing"))

	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].ChunkID)
}

func TestIndex_Reset(t *testing.T) {
	ctx := context.Background()
	idx := New(0)
	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0}))

	require.NoError(t, idx.Reset())
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 2, idx.Dimension())
	require.NoError(t, idx.Close())
}

func TestIndex_ConcurrentUpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := New(3)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				id := fmt.Sprintf("w%d-%d", w, n%10)
				assert.NoError(t, idx.Upsert(ctx, id, []float32{float32(w), float32(n), 1}))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				hits, err := idx.Search(ctx, []float32{1, 1, 1}, 5)
				assert.NoError(t, err)
				for _, h := range hits {
					assert.False(t, math.IsNaN(h.Similarity))
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 40, idx.Len())
}
