package driving

import (
	"context"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// SummariseService runs the summarisation pipeline on demand.
// Both operations process papers sequentially and report only papers whose
// summaries were persisted. A failed paper never aborts the batch.
type SummariseService interface {
	// SummariseAll summarises every paper that has no summary yet.
	SummariseAll(ctx context.Context) (*domain.Report, error)

	// SummariseOne summarises the paper with the given ID, overwriting any
	// existing summary. An empty ID returns domain.ErrMissingIdentifier.
	SummariseOne(ctx context.Context, paperID string) (*domain.Report, error)
}
