package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// progressStep is the smallest change in percent that produces a new line.
const progressStep = 10

var progressTitleStyle = lipgloss.NewStyle().Bold(true).Width(24)

// progressPrinter renders ingestion progress for several documents.
// On a terminal each update is drawn as a bar; otherwise as a percentage.
type progressPrinter struct {
	mu     sync.Mutex
	out    io.Writer
	tty    bool
	bar    progress.Model
	titles map[string]string
	last   map[string]int
}

func newProgressPrinter(out io.Writer, titles map[string]string) *progressPrinter {
	return &progressPrinter{
		out:    out,
		tty:    isTerminal(out),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		titles: titles,
		last:   make(map[string]int),
	}
}

// report is a domain.DocumentProgressFunc and is safe for concurrent use.
func (p *progressPrinter) report(id string, fraction float64) {
	percent := int(fraction * 100)

	p.mu.Lock()
	defer p.mu.Unlock()

	last, seen := p.last[id]
	if seen && percent < 100 && percent-last < progressStep {
		return
	}
	if seen && last == 100 {
		return
	}
	p.last[id] = percent

	title := p.titles[id]
	if title == "" {
		title = id
	}

	if p.tty {
		fmt.Fprintf(p.out, "%s %s\n", progressTitleStyle.Render(title), p.bar.ViewAs(fraction))
		return
	}
	fmt.Fprintf(p.out, "%s: %d%%\n", title, percent)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
