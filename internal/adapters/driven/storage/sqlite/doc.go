// Package sqlite provides a SQLite-based implementation of the document and
// chunk store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Both stores share one connection:
//
//   - DocumentStore: Imported files and manual texts
//   - ChunkStore: Chunk text and vectors, the source of truth for the vector index
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.kbot/data/knowledge.db
//
// # Vectors
//
// Embeddings are stored as little-endian float32 blobs.
package sqlite
