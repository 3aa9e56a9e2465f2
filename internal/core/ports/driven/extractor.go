package driven

import (
	"context"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// TextExtractor turns fetched bytes into plain text.
type TextExtractor interface {
	// Extract returns the document text. For paginated formats pages are
	// joined with "\n" in page order.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// Normaliser is a TextExtractor for specific MIME types.
type Normaliser interface {
	TextExtractor

	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int
}
