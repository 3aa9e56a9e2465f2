package normalisers

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// pdfMagic opens every PDF file.
var pdfMagic = []byte("%PDF-")

// Registry dispatches extraction to the highest priority normaliser for a
// document's MIME type.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry with the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns all MIME types that can be extracted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, n := range r.normalisers {
		for _, m := range n.SupportedMIMETypes() {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Extract resolves the document's MIME type and delegates to the best match.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	mimeType := ResolveMIMEType(raw.MIMEType, raw.Content)
	n := r.lookup(mimeType)
	if n == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	return n.Extract(ctx, raw)
}

func (r *Registry) lookup(mimeType string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.normalisers {
		for _, m := range n.SupportedMIMETypes() {
			if m == mimeType {
				return n
			}
		}
	}
	return nil
}

// ResolveMIMEType normalises a Content-Type header value. Content starting
// with the PDF magic is always a PDF whatever the header says. Missing or
// generic binary types are replaced by sniffing the content.
func ResolveMIMEType(contentType string, content []byte) string {
	if bytes.HasPrefix(content, pdfMagic) {
		return "application/pdf"
	}

	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case "", "application/octet-stream", "binary/octet-stream", "application/download", "application/x-download":
	default:
		return mediaType
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(content))
	return sniffed
}
