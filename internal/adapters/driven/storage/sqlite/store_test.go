package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func strPtr(s string) *string { return &s }

func seed(t *testing.T, store *Store, papers ...domain.Paper) {
	t.Helper()
	for _, p := range papers {
		require.NoError(t, store.AddPaper(context.Background(), p))
	}
}

func TestNewStore_CreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "papers.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	store, err := NewStore(path)
	require.NoError(t, err)
	seed(t, store, domain.Paper{ID: "p1", PDFURL: "https://example.org/1.pdf"})
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	papers, err := reopened.SelectByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestSelectPending(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store,
		domain.Paper{ID: "p1", PDFURL: "https://example.org/1.pdf"},
		domain.Paper{ID: "p2", PDFURL: "https://example.org/2.pdf", Summary: strPtr("done")},
		domain.Paper{ID: "p3", PDFURL: "https://example.org/3.pdf"},
	)

	papers, err := store.SelectPending(context.Background())

	require.NoError(t, err)
	require.Len(t, papers, 2)
	assert.Equal(t, "p1", papers[0].ID)
	assert.Equal(t, "https://example.org/1.pdf", papers[0].PDFURL)
	assert.Nil(t, papers[0].Summary)
	assert.Equal(t, "p3", papers[1].ID)
}

func TestSelectPending_Empty(t *testing.T) {
	store := setupTestStore(t)

	papers, err := store.SelectPending(context.Background())

	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestSelectByID(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store, domain.Paper{ID: "p2", PDFURL: "u", Summary: strPtr("done")})

	papers, err := store.SelectByID(context.Background(), "p2")
	require.NoError(t, err)
	require.Len(t, papers, 1)
	require.NotNil(t, papers[0].Summary)
	assert.Equal(t, "done", *papers[0].Summary)

	missing, err := store.SelectByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestUpdateSummary(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seed(t, store, domain.Paper{ID: "p1", PDFURL: "u"})

	require.NoError(t, store.UpdateSummary(ctx, "p1", "first"))
	require.NoError(t, store.UpdateSummary(ctx, "p1", "second"))

	papers, err := store.SelectByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "second", *papers[0].Summary)

	pending, err := store.SelectPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUpdateSummary_EmptyStringIsNotPending(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seed(t, store, domain.Paper{ID: "p1", PDFURL: "u"})

	require.NoError(t, store.UpdateSummary(ctx, "p1", ""))

	pending, err := store.SelectPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUpdateSummary_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.UpdateSummary(context.Background(), "nope", "x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPaper_UpsertKeepsSummary(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seed(t, store, domain.Paper{ID: "p1", PDFURL: "old", Summary: strPtr("kept")})

	require.NoError(t, store.AddPaper(ctx, domain.Paper{ID: "p1", PDFURL: "new"}))

	papers, err := store.SelectByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "new", papers[0].PDFURL)
	assert.Equal(t, "kept", *papers[0].Summary)
}

func TestAddPaper_RequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.AddPaper(context.Background(), domain.Paper{ID: "  ", PDFURL: "u"})

	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)
}

func TestCancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.SelectPending(ctx)

	assert.Error(t, err)
}
