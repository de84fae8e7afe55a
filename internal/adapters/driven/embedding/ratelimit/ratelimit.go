// Package ratelimit wraps an embedding service so that every caller in the
// process shares one request budget.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultInterval spaces provider calls when none is given.
const DefaultInterval = 200 * time.Millisecond

// EmbeddingService spaces Embed calls across all goroutines.
type EmbeddingService struct {
	next   driven.EmbeddingService
	bucket *rate.Limiter
}

// New wraps next so at most one Embed call starts per interval.
func New(next driven.EmbeddingService, interval time.Duration) *EmbeddingService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &EmbeddingService{
		next:   next,
		bucket: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Embed waits for the shared budget, then delegates.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.bucket.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return s.next.Embed(ctx, text)
}

// Dimensions returns the wrapped service's vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.next.Dimensions()
}

// ModelName returns the wrapped service's model.
func (s *EmbeddingService) ModelName() string {
	return s.next.ModelName()
}

// Ping bypasses the limiter.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *EmbeddingService) Close() error {
	return s.next.Close()
}
