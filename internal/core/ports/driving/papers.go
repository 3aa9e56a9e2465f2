package driving

import (
	"context"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// PaperService reads and registers papers in the document store.
type PaperService interface {
	// Get returns one paper. Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, paperID string) (*domain.Paper, error)

	// ListPending returns papers still waiting for a summary.
	ListPending(ctx context.Context) ([]domain.Paper, error)

	// Add registers a paper for summarisation.
	// Returns domain.ErrNotImplemented if the store cannot accept new papers.
	Add(ctx context.Context, paperID, pdfURL string) error
}
