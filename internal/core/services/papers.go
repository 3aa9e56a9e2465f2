package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
)

// Ensure PaperService implements the interface.
var _ driving.PaperService = (*PaperService)(nil)

// PaperService is a thin catalogue over the document store.
type PaperService struct {
	store driven.DocumentStore
}

// NewPaperService creates a paper service.
func NewPaperService(store driven.DocumentStore) *PaperService {
	return &PaperService{store: store}
}

// Get returns the paper with the given ID.
func (s *PaperService) Get(ctx context.Context, paperID string) (*domain.Paper, error) {
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return nil, domain.ErrMissingIdentifier
	}
	papers, err := s.store.SelectByID(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("paper %s: %w", paperID, domain.ErrNotFound)
	}
	return &papers[0], nil
}

// ListPending returns papers without a summary.
func (s *PaperService) ListPending(ctx context.Context) ([]domain.Paper, error) {
	return s.store.SelectPending(ctx)
}

// Add registers a paper if the store supports writes.
func (s *PaperService) Add(ctx context.Context, paperID, pdfURL string) error {
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return domain.ErrMissingIdentifier
	}
	if strings.TrimSpace(pdfURL) == "" {
		return fmt.Errorf("%w: pdf url is required", domain.ErrInvalidInput)
	}
	writer, ok := s.store.(driven.PaperWriter)
	if !ok {
		return fmt.Errorf("%w: store does not accept new papers", domain.ErrNotImplemented)
	}
	return writer.AddPaper(ctx, domain.Paper{ID: paperID, PDFURL: pdfURL})
}
