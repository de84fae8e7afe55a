// Package chunker splits text into overlapping, word-aligned chunks.
package chunker

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default chunk budget.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of words carried into the next chunk.
const DefaultChunkOverlap = 200

// Chunker accumulates whitespace-separated words into chunks of at most
// chunkSize (measured in unit), carrying the trailing overlap words of each
// closed chunk into the next one. A single word longer than the budget is
// emitted whole rather than split.
type Chunker struct {
	chunkSize int
	overlap   int
	unit      domain.ChunkUnit
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk budget.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the number of trailing words repeated at the start of the next chunk.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// WithUnit sets how the chunk budget is measured.
func WithUnit(unit domain.ChunkUnit) Option {
	return func(c *Chunker) {
		if unit.IsValid() {
			c.unit = unit
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
		unit:      domain.ChunkUnitCharacters,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FromSettings creates a chunker from chunking settings.
func FromSettings(s domain.ChunkingSettings) *Chunker {
	return New(WithChunkSize(s.Size), WithOverlap(s.Overlap), WithUnit(s.Unit))
}

// Name returns the chunker name.
func (c *Chunker) Name() string {
	return "chunker"
}

// Chunk splits text into ordered chunks.
//
// The running length is the sum of word lengths plus one separator per
// word in character mode, or the word count in word mode. A chunk closes
// when the next word would push the running length past the budget, but
// only once it holds at least one word beyond the carried overlap, so
// every chunk advances through the text.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	carried := 0
	length := 0

	for _, word := range words {
		size := c.wordSize(word)
		if len(current) > carried && length+size > c.chunkSize {
			chunks = append(chunks, strings.Join(current, " "))

			carry := tail(current, c.overlap)
			current = make([]string, len(carry), len(carry)+1)
			copy(current, carry)
			carried = len(current)
			length = c.joinedLength(current)
		}

		current = append(current, word)
		length += size + c.separatorSize()
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

func (c *Chunker) wordSize(word string) int {
	if c.unit == domain.ChunkUnitWords {
		return 1
	}
	return uniseg.GraphemeClusterCount(word)
}

func (c *Chunker) separatorSize() int {
	if c.unit == domain.ChunkUnitWords {
		return 0
	}
	return 1
}

// joinedLength is the length of words joined with single spaces.
func (c *Chunker) joinedLength(words []string) int {
	if len(words) == 0 {
		return 0
	}
	n := 0
	for _, w := range words {
		n += c.wordSize(w)
	}
	return n + (len(words)-1)*c.separatorSize()
}

func tail(words []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n >= len(words) {
		return words
	}
	return words[len(words)-n:]
}
