package driven

import (
	"context"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// DocumentStore selects papers for summarisation and persists the results.
// Backed by SQLite, Postgres, MongoDB or memory.
type DocumentStore interface {
	// SelectPending returns every paper whose summary is absent, in store order.
	SelectPending(ctx context.Context) ([]domain.Paper, error)

	// SelectByID returns the paper with the given ID regardless of summary state.
	// Returns an empty slice when no such paper exists.
	SelectByID(ctx context.Context, id string) ([]domain.Paper, error)

	// UpdateSummary writes the summary for a paper, overwriting any prior value.
	// Returns domain.ErrNotFound when no row matches.
	UpdateSummary(ctx context.Context, id, summary string) error

	// Close releases resources.
	Close() error
}

// PaperWriter is implemented by stores that can register new papers.
// Remote stores usually have their own ingestion and do not implement it.
type PaperWriter interface {
	// AddPaper inserts a paper, or updates its PDF URL if the ID exists.
	AddPaper(ctx context.Context, paper domain.Paper) error
}
