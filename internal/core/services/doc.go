// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion pipeline and retrieval service form the retrieval core:
// text is chunked, embedded and indexed on the way in, and queries are
// embedded and matched against the vector index on the way out.
package services
