package driven

// Chunker splits text into overlapping, word-aligned chunks.
// Implementations are pure: the same input always yields the same output.
type Chunker interface {
	// Chunk returns the ordered chunk texts. Empty input yields no chunks.
	Chunk(text string) []string
}
