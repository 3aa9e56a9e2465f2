// Package storage opens the configured DocumentStore backend.
package storage

import (
	"context"
	"fmt"

	"github.com/custodia-labs/papersum/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/papersum/internal/adapters/driven/storage/mongo"
	"github.com/custodia-labs/papersum/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/papersum/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Open returns the DocumentStore selected by settings.
// The caller owns the store and must Close it.
func Open(ctx context.Context, settings domain.StoreSettings) (driven.DocumentStore, error) {
	if !settings.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown store kind %q", domain.ErrInvalidInput, settings.Kind)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: %s store is missing connection settings", domain.ErrInvalidInput, settings.Kind)
	}

	switch settings.Kind {
	case domain.StoreMemory:
		// A path seeds the store from a JSON file; otherwise it starts empty.
		if settings.Path != "" {
			return memory.LoadFile(settings.Path)
		}
		return memory.NewDocumentStore(), nil

	case domain.StoreSQLite:
		return sqlite.NewStore(settings.Path)

	case domain.StorePostgres:
		return postgres.NewStore(ctx, settings.DSN, settings.Collection)

	case domain.StoreMongo:
		return mongo.NewStore(ctx, settings.DSN, settings.Database, settings.Collection)

	default:
		return nil, fmt.Errorf("%w: unsupported store kind %q", domain.ErrInvalidInput, settings.Kind)
	}
}
