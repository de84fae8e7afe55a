package mcp

import (
	"context"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	matches   []domain.SimilarityMatch
	err       error
	lastLimit int
	lastQuery string
}

func (m *mockRetrievalService) Retrieve(_ context.Context, query string, limit int) ([]domain.SimilarityMatch, error) {
	m.lastQuery = query
	m.lastLimit = limit
	return m.matches, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockDocumentService) AddFile(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) AddText(_ context.Context, _, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Process(_ context.Context, _ string, _ domain.ProgressFunc) error {
	return m.err
}

func (m *mockDocumentService) ProcessAll(_ context.Context, _ []string, _ domain.DocumentProgressFunc) error {
	return m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) DeleteByPath(_ context.Context, _ string) error {
	return m.err
}
