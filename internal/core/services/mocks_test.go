package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
)

// mockEmbedder is a configurable driven.EmbeddingService for tests.
type mockEmbedder struct {
	mu      sync.Mutex
	dims    int
	calls   int
	inputs  []string
	embedFn func(call int, text string) ([]float32, error)
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.inputs = append(m.inputs, text)
	m.mu.Unlock()

	if m.embedFn != nil {
		return m.embedFn(call, text)
	}
	vec := make([]float32, m.dims)
	vec[0] = 1
	return vec, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) ModelName() string { return "mock-embedding" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error { return nil }

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// keywordVector embeds text so that texts sharing a keyword point the same way.
// Component 0 marks the keyword, component 1 is shared by every text.
func keywordVector(dims int, keyword string) func(int, string) ([]float32, error) {
	return func(_ int, text string) ([]float32, error) {
		vec := make([]float32, dims)
		vec[1] = 1
		for _, w := range strings.Fields(text) {
			if w == keyword {
				vec[0] = 1
				break
			}
		}
		return vec, nil
	}
}

// sleepRecorder records requested waits without sleeping.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.waits = append(r.waits, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.waits...)
}

// progressRecorder collects reported fractions.
type progressRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (r *progressRecorder) report(fraction float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, fraction)
}

func (r *progressRecorder) recorded() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.values...)
}

// fiveLetterWord returns a distinct lowercase five-letter word for each n.
func fiveLetterWord(n int) string {
	b := make([]byte, 5)
	for i := 4; i >= 0; i-- {
		b[i] = 'a' + byte(n%26)
		n /= 26
	}
	return string(b)
}
