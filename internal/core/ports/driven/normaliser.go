package driven

import (
	"context"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// Normaliser turns the bytes of an imported file into the text that is chunked.
// Each normaliser handles specific file extensions (e.g. ".md").
type Normaliser interface {
	// Extensions returns the lower-case extensions handled, including the dot.
	Extensions() []string

	// Normalise extracts the title and text of a file.
	Normalise(ctx context.Context, raw *domain.RawFile) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is the document title.
	Title string

	// Content is the text handed to the chunker.
	Content string
}

// NormaliserRegistry selects the normaliser for a file by its extension.
type NormaliserRegistry interface {
	// Normalise transforms a file using the normaliser registered for its
	// extension, or the fallback when none is.
	Normalise(ctx context.Context, raw *domain.RawFile) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// Extensions returns all extensions with a dedicated normaliser.
	Extensions() []string
}
