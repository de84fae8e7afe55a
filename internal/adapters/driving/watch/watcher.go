// Package watch keeps the knowledge base in step with a directory of text files.
// New and modified .txt and .md files are imported and processed; removed
// files are deleted together with their chunks.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
)

// ChangeKind describes what the watcher did with a file.
type ChangeKind string

const (
	// ChangeIndexed means the file was imported and processed.
	ChangeIndexed ChangeKind = "indexed"

	// ChangeRemoved means the file's document was deleted.
	ChangeRemoved ChangeKind = "removed"
)

// Change reports the outcome of handling one file event.
type Change struct {
	Path string
	Kind ChangeKind
	Err  error
}

// ReportFunc receives every handled change.
type ReportFunc func(Change)

// supportedExtensions lists the file types imported as documents.
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Watcher imports files from a directory tree and follows later changes.
type Watcher struct {
	documents driving.DocumentService
	root      string
}

// New creates a watcher for root.
func New(documents driving.DocumentService, root string) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", abs)
	}
	return &Watcher{documents: documents, root: abs}, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Sync imports every supported file under the root and processes them
// concurrently. It returns the number of files imported.
func (w *Watcher) Sync(ctx context.Context) (int, error) {
	var ids []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != w.root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isSupported(path) {
			return nil
		}

		doc, err := w.documents.AddFile(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		ids = append(ids, doc.ID)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", w.root, err)
	}

	if err := w.documents.ProcessAll(ctx, ids, nil); err != nil {
		return len(ids), err
	}
	return len(ids), nil
}

// Run watches the root until ctx is cancelled. report may be nil.
func (w *Watcher) Run(ctx context.Context, report ReportFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.root); err != nil {
		return err
	}
	logger.Info("Watching %s", w.root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !isHidden(event.Name) {
				if err := w.addTree(fsw, event.Name); err != nil {
					logger.Warn("Cannot watch %s: %v", event.Name, err)
				}
				continue
			}
			change, handled := w.handleEvent(ctx, event)
			if handled && report != nil {
				report(change)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent applies a single file event. It reports false for events
// that do not concern a supported, visible file.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) (Change, bool) {
	path := event.Name
	if isHidden(path) || !isSupported(path) {
		return Change{}, false
	}

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if isDir(path) {
			return Change{}, false
		}
		logger.Debug("File created or modified: %s", path)
		return Change{Path: path, Kind: ChangeIndexed, Err: w.index(ctx, path)}, true

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		logger.Debug("File removed or renamed: %s", path)
		return Change{Path: path, Kind: ChangeRemoved, Err: w.documents.DeleteByPath(ctx, path)}, true

	default:
		return Change{}, false
	}
}

func (w *Watcher) index(ctx context.Context, path string) error {
	doc, err := w.documents.AddFile(ctx, path)
	if err != nil {
		return err
	}
	return w.documents.Process(ctx, doc.ID, nil)
}

// addTree watches dir and every visible directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && isHidden(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// isHidden reports whether the final path element is a dotfile.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
