package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages imported files and manual notes.
type DocumentService struct {
	docStore    driven.DocumentStore
	chunkStore  driven.ChunkStore
	index       driven.VectorIndex
	ingestion   driving.IngestionService
	normaliser  driven.NormaliserRegistry
	concurrency int
	locks       keyedMutex
	now         func() time.Time
}

// keyedMutex serialises work per document id. Entries are dropped once
// no goroutine holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedEntry)
	}
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// NewDocumentService creates a new document service.
// ingestion may be nil, in which case Process reports ErrEmbeddingUnavailable.
func NewDocumentService(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	index driven.VectorIndex,
	ingestion driving.IngestionService,
) *DocumentService {
	return &DocumentService{
		docStore:    docStore,
		chunkStore:  chunkStore,
		index:       index,
		ingestion:   ingestion,
		concurrency: domain.DefaultSettings().Ingest.Concurrency,
		now:         time.Now,
	}
}

// SetConcurrency bounds how many documents ProcessAll ingests at once.
func (s *DocumentService) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// SetNormaliser sets the registry that turns file bytes into document text.
// Without one, files are stored verbatim and titled by their base name.
func (s *DocumentService) SetNormaliser(r driven.NormaliserRegistry) {
	s.normaliser = r
}

// AddFile imports a UTF-8 text file. Importing a path again replaces the
// stored content and resets the document to unprocessed.
func (s *DocumentService) AddFile(ctx context.Context, path string) (*domain.Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not UTF-8 text", domain.ErrInvalidInput, absPath)
	}

	title, content := filepath.Base(absPath), string(data)
	if s.normaliser != nil {
		result, err := s.normaliser.Normalise(ctx, &domain.RawFile{Path: absPath, Content: data})
		if err != nil {
			return nil, fmt.Errorf("normalise %s: %w", absPath, err)
		}
		title, content = result.Title, result.Content
	}

	now := s.now()
	doc, err := s.docStore.GetDocumentByPath(ctx, absPath)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		doc = &domain.Document{
			ID:        uuid.NewString(),
			Kind:      domain.DocumentKindFile,
			Path:      absPath,
			CreatedAt: now,
		}
	case err != nil:
		return nil, &domain.StorageError{Op: "get document", Err: err}
	}

	doc.Title = title
	doc.Content = content
	doc.Size = int64(len(content))
	doc.State = domain.DocumentUnprocessed
	doc.UpdatedAt = now

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, &domain.StorageError{Op: "save document", Err: err}
	}
	logger.Debug("Added file %s as %s", absPath, doc.ID)
	return doc, nil
}

// AddText stores a manually entered note.
func (s *DocumentService) AddText(ctx context.Context, title, content string) (*domain.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	now := s.now()
	doc := &domain.Document{
		ID:        uuid.NewString(),
		Kind:      domain.DocumentKindManual,
		Title:     title,
		Content:   content,
		Size:      int64(len(content)),
		State:     domain.DocumentUnprocessed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, &domain.StorageError{Op: "save document", Err: err}
	}
	return doc, nil
}

// Process ingests a document and marks it processed on success.
// Calls for the same document run one at a time.
func (s *DocumentService) Process(ctx context.Context, id string, progress domain.ProgressFunc) error {
	if s.ingestion == nil {
		return domain.ErrEmbeddingUnavailable
	}
	defer s.locks.lock(id)()

	doc, err := s.docStore.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ingestion.Ingest(ctx, doc, progress); err != nil {
		return fmt.Errorf("ingest %s: %w", doc.Title, err)
	}

	doc.State = domain.DocumentProcessed
	doc.UpdatedAt = s.now()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return &domain.StorageError{Op: "save document", Err: err}
	}
	return nil
}

// ProcessAll processes documents concurrently, each with its own sequential
// chunk loop. A failing document does not stop the others; the first
// failure is returned once all have finished. Repeated ids are processed once.
func (s *DocumentService) ProcessAll(ctx context.Context, ids []string, progress domain.DocumentProgressFunc) error {
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		g.Go(func() error {
			var fn domain.ProgressFunc
			if progress != nil {
				fn = func(fraction float64) { progress(id, fraction) }
			}
			return s.Process(ctx, id, fn)
		})
	}
	return g.Wait()
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, id)
}

// List returns all documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document, its chunks and their vectors. Vectors leave
// the index before anything leaves storage.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	defer s.locks.lock(id)()

	if _, err := s.docStore.GetDocument(ctx, id); err != nil {
		return err
	}

	chunks, err := s.chunkStore.ListByDocument(ctx, id)
	if err != nil {
		return &domain.StorageError{Op: "list chunks", Err: err}
	}
	if err := removeChunks(ctx, s.index, s.chunkStore, chunks); err != nil {
		return err
	}

	if err := s.docStore.DeleteDocument(ctx, id); err != nil {
		return &domain.StorageError{Op: "delete document", Err: err}
	}
	logger.Debug("Deleted document %s with %d chunks", id, len(chunks))
	return nil
}

// DeleteByPath removes the file document imported from path.
// A path that was never imported is not an error.
func (s *DocumentService) DeleteByPath(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	doc, err := s.docStore.GetDocumentByPath(ctx, absPath)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return &domain.StorageError{Op: "get document", Err: err}
	}
	return s.Delete(ctx, doc.ID)
}
