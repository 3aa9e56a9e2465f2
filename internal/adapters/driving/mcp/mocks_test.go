package mcp

import (
	"context"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// mockSummariseService is a mock implementation of driving.SummariseService.
type mockSummariseService struct {
	report  *domain.Report
	err     error
	calls   int
	lastID  string
	oneCall bool
}

func (m *mockSummariseService) SummariseAll(_ context.Context) (*domain.Report, error) {
	m.calls++
	return m.report, m.err
}

func (m *mockSummariseService) SummariseOne(_ context.Context, paperID string) (*domain.Report, error) {
	m.calls++
	m.oneCall = true
	m.lastID = paperID
	return m.report, m.err
}

// mockPaperService is a mock implementation of driving.PaperService.
type mockPaperService struct {
	papers  []domain.Paper
	paper   *domain.Paper
	err     error
	addedID string
}

func (m *mockPaperService) Get(_ context.Context, _ string) (*domain.Paper, error) {
	return m.paper, m.err
}

func (m *mockPaperService) ListPending(_ context.Context) ([]domain.Paper, error) {
	return m.papers, m.err
}

func (m *mockPaperService) Add(_ context.Context, paperID, _ string) error {
	m.addedID = paperID
	return m.err
}
