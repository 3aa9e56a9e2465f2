package driven

import (
	"context"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// ByteFetcher downloads the bytes behind a paper's locator.
type ByteFetcher interface {
	// Fetch normalises the locator and downloads its content.
	// A non-success response or empty body returns an error wrapping
	// domain.ErrDownloadFailed. Callers remove RawDocument.LocalPath when done.
	Fetch(ctx context.Context, locator string) (*domain.RawDocument, error)
}
