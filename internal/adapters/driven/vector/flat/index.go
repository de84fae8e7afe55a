package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is immutable once stored; updates swap the pointer.
type entry struct {
	vector []float32
	norm   float64
	seq    uint64
}

// Index is an exact full-scan cosine index safe for concurrent use.
type Index struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	dimension int
	nextSeq   uint64
}

// New creates an empty index. A dimension of 0 is fixed by the first upsert.
func New(dimension int) *Index {
	if dimension < 0 {
		dimension = 0
	}
	return &Index{
		entries:   make(map[string]*entry),
		dimension: dimension,
	}
}

// Upsert inserts or replaces the vector for chunkID.
func (i *Index) Upsert(_ context.Context, chunkID string, embedding []float32) error {
	if chunkID == "" {
		return fmt.Errorf("%w: empty chunk id", domain.ErrInvalidInput)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	norm := magnitude(vec)

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dimension == 0 {
		if len(vec) == 0 {
			return fmt.Errorf("%w: empty vector", domain.ErrInvalidInput)
		}
		i.dimension = len(vec)
	}
	if len(vec) != i.dimension {
		return &domain.DimensionMismatchError{Expected: i.dimension, Got: len(vec)}
	}

	seq := i.nextSeq
	if existing, ok := i.entries[chunkID]; ok {
		seq = existing.seq
	} else {
		i.nextSeq++
	}

	i.entries[chunkID] = &entry{vector: vec, norm: norm, seq: seq}
	return nil
}

// Remove deletes the vector for chunkID. Absent IDs are ignored.
func (i *Index) Remove(_ context.Context, chunkID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.entries, chunkID)
	return nil
}

// Search returns the k most similar vectors to query.
func (i *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if k <= 0 || len(i.entries) == 0 {
		return []driven.VectorHit{}, nil
	}
	if len(query) != i.dimension {
		return nil, &domain.DimensionMismatchError{Expected: i.dimension, Got: len(query)}
	}

	qnorm := magnitude(query)

	type scored struct {
		id    string
		score float64
		seq   uint64
	}
	all := make([]scored, 0, len(i.entries))
	for id, e := range i.entries {
		all = append(all, scored{id: id, score: cosine(query, qnorm, e.vector, e.norm), seq: e.seq})
	}

	sort.Slice(all, func(a, b int) bool {
		if all[a].score != all[b].score {
			return all[a].score > all[b].score
		}
		return all[a].seq < all[b].seq
	})

	if k > len(all) {
		k = len(all)
	}
	hits := make([]driven.VectorHit, k)
	for n := 0; n < k; n++ {
		hits[n] = driven.VectorHit{ChunkID: all[n].id, Similarity: all[n].score}
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Dimension returns the fixed vector length, or 0 if not yet fixed.
func (i *Index) Dimension() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dimension
}

// Reset drops every vector. The dimension stays fixed.
func (i *Index) Reset() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = make(map[string]*entry)
	i.nextSeq = 0
	return nil
}

// Close releases the stored vectors.
func (i *Index) Close() error {
	return i.Reset()
}
