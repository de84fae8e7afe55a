package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawFile_Fields(t *testing.T) {
	raw := RawFile{Path: "/notes/a.md", Content: []byte("# A")}

	assert.Equal(t, "/notes/a.md", raw.Path)
	assert.Equal(t, []byte("# A"), raw.Content)
}
