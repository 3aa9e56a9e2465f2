package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

func TestNormaliseLocator(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		want    string
	}{
		{"clean", "https://arxiv.org/pdf/1706.03762", "https://arxiv.org/pdf/1706.03762"},
		{"whitespace", "  https://x.org/a.pdf \n", "https://x.org/a.pdf"},
		{"json array", `["https://x.org/a.pdf"]`, "https://x.org/a.pdf"},
		{"single quotes", `['https://x.org/a.pdf']`, "https://x.org/a.pdf"},
		{"bare quotes", `"https://x.org/a.pdf"`, "https://x.org/a.pdf"},
		{"empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseLocator(tt.locator))
		})
	}
}

func newPDFServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	srv := newPDFServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	})
	f := New(WithTempDir(t.TempDir()), WithUserAgent("papersum-test"))

	raw, err := f.Fetch(context.Background(), `["`+srv.URL+`/paper.pdf"]`)

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/paper.pdf", raw.URI)
	assert.Equal(t, "application/pdf", raw.MIMEType)
	assert.Equal(t, []byte("%PDF-1.4 body"), raw.Content)
	assert.Equal(t, "papersum-test", gotUA)

	spooled, err := os.ReadFile(raw.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, raw.Content, spooled)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	dir := t.TempDir()
	srv := newPDFServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	raw, err := New(WithTempDir(dir)).Fetch(context.Background(), srv.URL)

	assert.Nil(t, raw)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "404")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestFetch_EmptyBodyRemovesSpool(t *testing.T) {
	dir := t.TempDir()
	srv := newPDFServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := New(WithTempDir(dir)).Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestFetch_TooLarge(t *testing.T) {
	srv := newPDFServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	})

	_, err := New(WithTempDir(t.TempDir()), WithMaxBytes(16)).Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestFetch_InvalidLocators(t *testing.T) {
	f := New()
	for _, locator := range []string{"", "[]", "ftp://x.org/a.pdf", "not a url", "https://"} {
		_, err := f.Fetch(context.Background(), locator)
		assert.ErrorIs(t, err, domain.ErrDownloadFailed, locator)
	}
}

func TestFetch_TooManyRequestsSetsBackoff(t *testing.T) {
	srv := newPDFServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	f := New(WithTempDir(t.TempDir()))

	_, err := f.Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.False(t, f.limiter.Allow())
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := newPDFServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithTempDir(t.TempDir())).Fetch(ctx, srv.URL)

	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("soon"))
}
