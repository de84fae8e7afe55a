package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
)

// Ensure IngestionPipeline implements the interface.
var _ driving.IngestionService = (*IngestionPipeline)(nil)

// Progress milestones reported by Ingest.
const (
	progressStart     = 0.0
	progressReset     = 0.1
	progressTextRead  = 0.2
	progressLoopStart = 0.3
	progressLoopSpan  = 0.6
	progressDone      = 1.0
)

// Sleeper waits for d or until ctx is done, returning ctx.Err() in the latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper backed by a timer.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IngestionPipeline chunks a document, embeds every chunk with the retry
// policy, persists the embedded chunks and registers them with the index.
// Chunks of one document are processed strictly one after another.
type IngestionPipeline struct {
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	chunkStore driven.ChunkStore
	index      driven.VectorIndex
	policy     domain.IngestSettings
	sleep      Sleeper
	newID      func() string
	now        func() time.Time
}

// NewIngestionPipeline creates a new ingestion pipeline.
// Zero values in policy fall back to the default retry policy.
func NewIngestionPipeline(
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	chunkStore driven.ChunkStore,
	index driven.VectorIndex,
	policy domain.IngestSettings,
) *IngestionPipeline {
	defaults := domain.DefaultSettings().Ingest
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = defaults.MaxAttempts
	}

	return &IngestionPipeline{
		chunker:    chunker,
		embedder:   embedder,
		chunkStore: chunkStore,
		index:      index,
		policy:     policy,
		sleep:      SleepContext,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// SetSleeper replaces the wait used between attempts and after successful calls.
func (p *IngestionPipeline) SetSleeper(sleep Sleeper) {
	if sleep == nil {
		sleep = SleepContext
	}
	p.sleep = sleep
}

// Ingest chunks, embeds, persists and indexes one document.
//
// On exhausted retries the remaining chunks are skipped and the last
// embedding error is returned; chunks embedded before the failure stay
// persisted and indexed. The document's processing state is left to the caller.
func (p *IngestionPipeline) Ingest(ctx context.Context, doc *domain.Document, progress domain.ProgressFunc) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if p.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}
	if p.index == nil {
		return domain.ErrVectorIndexUnavailable
	}

	logger.Section("Ingest")
	logger.Debug("Document %s (%q)", doc.ID, doc.Title)
	defer logger.Timer("Ingest " + doc.ID)()

	report := newProgressReporter(progress)
	report(progressStart)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.resetChunks(ctx, doc.ID); err != nil {
		return err
	}
	report(progressReset)

	text := doc.Content
	report(progressTextRead)

	texts := p.chunker.Chunk(text)
	total := len(texts)
	logger.Debug("Chunked into %d chunks", total)
	if total == 0 {
		report(progressDone)
		return nil
	}

	report(progressLoopStart)
	for i, content := range texts {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk := &domain.Chunk{
			ID:         p.newID(),
			DocumentID: doc.ID,
			Content:    content,
			Position:   i,
			CreatedAt:  p.now(),
		}

		embedding, err := p.embedWithRetry(ctx, content)
		if err != nil {
			logger.Debug("Chunk %d of %s failed: %v", i, doc.ID, err)
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}
		if dim := p.index.Dimension(); dim > 0 && len(embedding) != dim {
			return fmt.Errorf("embed chunk %d: %w", i, &domain.DimensionMismatchError{Expected: dim, Got: len(embedding)})
		}
		chunk.Embedding = embedding

		if err := p.chunkStore.Save(ctx, chunk); err != nil {
			return &domain.StorageError{Op: "save chunk", Err: err}
		}
		if err := p.index.Upsert(ctx, chunk.ID, chunk.Embedding); err != nil {
			return fmt.Errorf("index chunk %d: %w", i, err)
		}

		report(progressLoopStart + progressLoopSpan*float64(i+1)/float64(total))
	}

	report(progressDone)
	logger.Debug("Ingested %d chunks for %s", total, doc.ID)
	return nil
}

// embedWithRetry calls the embedder up to MaxAttempts times, waiting
// RetryDelay between attempts and SuccessDelay after a success.
func (p *IngestionPipeline) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= p.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		embedding, err := p.embedder.Embed(ctx, text)
		if err == nil {
			// A cancelled wait is picked up by the next chunk's check.
			_ = p.sleep(ctx, p.policy.SuccessDelay)
			return embedding, nil
		}

		lastErr = err
		if !domain.IsRetryable(err) {
			return nil, err
		}
		logger.Debug("Embedding attempt %d/%d failed: %v", attempt, p.policy.MaxAttempts, err)

		if attempt < p.policy.MaxAttempts {
			if err := p.sleep(ctx, p.policy.RetryDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// resetChunks drops chunks left by an earlier ingestion of the same document.
func (p *IngestionPipeline) resetChunks(ctx context.Context, documentID string) error {
	existing, err := p.chunkStore.ListByDocument(ctx, documentID)
	if err != nil {
		return &domain.StorageError{Op: "list chunks", Err: err}
	}
	if len(existing) == 0 {
		return nil
	}

	logger.Debug("Removing %d previous chunks", len(existing))
	return removeChunks(ctx, p.index, p.chunkStore, existing)
}

// removeChunks takes chunks out of the index before deleting them from storage,
// so a concurrent search never returns an id that is already gone.
func removeChunks(ctx context.Context, index driven.VectorIndex, store driven.ChunkStore, chunks []domain.Chunk) error {
	if index != nil {
		for _, chunk := range chunks {
			if err := index.Remove(ctx, chunk.ID); err != nil {
				return fmt.Errorf("remove vector %s: %w", chunk.ID, err)
			}
		}
	}
	for _, chunk := range chunks {
		if err := store.Delete(ctx, chunk.ID); err != nil {
			return &domain.StorageError{Op: "delete chunk", Err: err}
		}
	}
	return nil
}

// newProgressReporter wraps fn so reported fractions never decrease.
func newProgressReporter(fn domain.ProgressFunc) domain.ProgressFunc {
	last := -1.0
	return func(fraction float64) {
		if fn == nil || fraction < last {
			return
		}
		last = fraction
		fn(fraction)
	}
}
