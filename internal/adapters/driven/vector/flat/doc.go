// Package flat provides an exact, in-memory cosine similarity index.
// It implements the driven.VectorIndex interface.
//
// Search scans every stored vector, so results are exact and
// deterministic: descending similarity, ties broken by insertion order.
// The index holds no durable state; callers rebuild it from the chunk
// store after a restart.
package flat
