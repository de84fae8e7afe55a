package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestExtensions(t *testing.T) {
	exts := New().Extensions()
	assert.Equal(t, []string{".md", ".markdown"}, exts)
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawFile{
		Path:    "/path/to/document.md",
		Content: []byte("# Hello World\n\nThis is a test."),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Hello World", result.Title)
	assert.Equal(t, "Hello World\n\nThis is a test.", result.Content)
}

func TestNormalise_NilFile(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_TitleFallsBackToFileName(t *testing.T) {
	raw := &domain.RawFile{
		Path:    "/notes/meeting-notes.md",
		Content: []byte("## Agenda\n\nNo top-level heading here."),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "meeting-notes.md", result.Title)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "headings",
			input:    "# Title\n## Section\n### Sub",
			contains: []string{"Title", "Section", "Sub"},
			excludes: []string{"#"},
		},
		{
			name:     "emphasis",
			input:    "Some **bold** and *italic* and __strong__ and _em_ text",
			contains: []string{"Some bold and italic and strong and em text"},
			excludes: []string{"*"},
		},
		{
			name:     "snake case survives",
			input:    "call snake_case_name here",
			contains: []string{"snake_case_name"},
		},
		{
			name:     "links and images",
			input:    "See [the docs](https://example.com) and ![diagram](d.png).",
			contains: []string{"See the docs and diagram."},
			excludes: []string{"https://", "d.png"},
		},
		{
			name:     "inline code keeps text",
			input:    "Run `go test` now",
			contains: []string{"Run go test now"},
			excludes: []string{"`"},
		},
		{
			name:     "code fence keeps body",
			input:    "Before\n\n```go\nfmt.Println(\"hi\")\n```\n\nAfter",
			contains: []string{"fmt.Println(\"hi\")", "Before", "After"},
			excludes: []string{"```", "go\n"},
		},
		{
			name:     "lists and quotes",
			input:    "- first\n* second\n+ third\n1. numbered\n> quoted",
			contains: []string{"first\nsecond\nthird\nnumbered\nquoted"},
		},
		{
			name:     "horizontal rule",
			input:    "above\n\n---\n\nbelow",
			contains: []string{"above", "below"},
			excludes: []string{"---"},
		},
		{
			name:     "blank runs collapsed",
			input:    "a\n\n\n\n\nb",
			contains: []string{"a\n\nb"},
			excludes: []string{"\n\n\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripMarkdown(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}
