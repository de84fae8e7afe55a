// Package domain defines the core business entities of the knowledge bot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An imported file or a manually entered text
//   - Chunk: A contiguous slice of document text, optionally embedded
//   - SimilarityMatch: A chunk paired with its query-time score
//   - Settings: Embedding, chunking, ingestion and retrieval configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
