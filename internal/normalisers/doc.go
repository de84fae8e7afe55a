// Package normalisers converts imported files into the plain text that is
// chunked and embedded. Normalisers are selected by file extension through
// a Registry, with plain text as the fallback.
package normalisers
