// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Chunker: Splits document text into overlapping chunks
//   - EmbeddingService: Turns text into a fixed-length vector
//   - VectorIndex: Exact cosine top-k over chunk vectors
//   - ChunkStore: Chunk persistence, the source of truth for vectors
//   - DocumentStore: Document persistence
//
// # Optional Interfaces
//
//   - ConfigStore: Application configuration. Defaults apply without it.
//   - NormaliserRegistry: File-to-text conversion. Files are stored verbatim without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
