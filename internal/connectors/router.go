package connectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/papersum/internal/connectors/filesystem"
	"github.com/custodia-labs/papersum/internal/connectors/web"
	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.ByteFetcher = (*Router)(nil)

// Router sends local locators to the local fetcher and everything else to
// the remote one.
type Router struct {
	remote driven.ByteFetcher
	local  driven.ByteFetcher
}

// NewRouter creates a router. local may be nil, which rejects local locators.
func NewRouter(remote, local driven.ByteFetcher) *Router {
	return &Router{remote: remote, local: local}
}

// Fetch dispatches on the locator form.
func (r *Router) Fetch(ctx context.Context, locator string) (*domain.RawDocument, error) {
	normalised := web.NormaliseLocator(locator)
	if filesystem.IsLocal(normalised) {
		if r.local == nil {
			return nil, fmt.Errorf("%w: local locators are disabled (set fetch.local_root)", domain.ErrDownloadFailed)
		}
		return r.local.Fetch(ctx, normalised)
	}
	return r.remote.Fetch(ctx, locator)
}
