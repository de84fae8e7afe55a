package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPrinter_PlainOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	p := newProgressPrinter(buf, map[string]string{"doc-1": "notes.txt"})
	assert.False(t, p.tty)

	for _, f := range []float64{0, 0.1, 0.15, 0.2, 0.3, 1.0, 1.0} {
		p.report("doc-1", f)
	}
	p.report("doc-2", 0.5)

	assert.Equal(t,
		"notes.txt: 0%\nnotes.txt: 10%\nnotes.txt: 20%\nnotes.txt: 30%\nnotes.txt: 100%\ndoc-2: 50%\n",
		buf.String())
}
