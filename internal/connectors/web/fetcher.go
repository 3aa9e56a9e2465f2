// Package web downloads paper content over HTTP.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.ByteFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 60 * time.Second
	DefaultMaxBytes  = 100 << 20
	DefaultUserAgent = "papersum"
)

// Fetcher downloads a locator's bytes and spools them to a temporary file.
type Fetcher struct {
	client    *http.Client
	limiter   *RateLimiter
	tempDir   string
	userAgent string
	maxBytes  int64
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the per-download timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.client.Timeout = d
		}
	}
}

// WithRateLimit throttles downloads. A non-positive rate disables throttling.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(f *Fetcher) {
		f.limiter = NewRateLimiter(requestsPerSecond, burst)
	}
}

// WithTempDir sets the spool directory. Empty uses the OS default.
func WithTempDir(dir string) Option {
	return func(f *Fetcher) {
		f.tempDir = dir
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBytes bounds the download size.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// New creates a fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		limiter:   NewRateLimiter(0, 1),
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NormaliseLocator strips surrounding whitespace, list brackets and quote
// characters that some rows carry around their URL (e.g., `["https://x/a.pdf"]`).
func NormaliseLocator(locator string) string {
	s := strings.TrimSpace(locator)
	s = strings.Trim(s, "[]")
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	return s
}

// Fetch downloads the locator. Any non-200 response, transport error or empty
// body returns an error wrapping domain.ErrDownloadFailed. On success the
// bytes are also spooled to RawDocument.LocalPath, which the caller removes.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (*domain.RawDocument, error) {
	uri := NormaliseLocator(locator)
	if err := validateURL(uri); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrDownloadFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/pdf, text/plain;q=0.5, */*;q=0.1")

	logger.Debug("Downloading %s", uri)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			f.limiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrDownloadFailed, uri, resp.StatusCode)
	}

	content, path, err := f.spool(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	return &domain.RawDocument{
		URI:       uri,
		MIMEType:  resp.Header.Get("Content-Type"),
		Content:   content,
		LocalPath: path,
	}, nil
}

// spool copies body into memory and a temporary file. The file is removed
// on any error.
func (f *Fetcher) spool(body io.Reader) (content []byte, path string, err error) {
	file, err := os.CreateTemp(f.tempDir, "papersum-*.pdf")
	if err != nil {
		return nil, "", fmt.Errorf("create spool file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close spool file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(file.Name())
		}
	}()

	var buf bytes.Buffer
	n, err := io.Copy(io.MultiWriter(file, &buf), io.LimitReader(body, f.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if n == 0 {
		return nil, "", errors.New("empty body")
	}
	if n > f.maxBytes {
		return nil, "", fmt.Errorf("body exceeds %d bytes", f.maxBytes)
	}

	return buf.Bytes(), file.Name(), nil
}

func validateURL(uri string) error {
	if uri == "" {
		return errors.New("empty locator")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("parse locator: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("locator has no host")
	}
	return nil
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return time.Until(at)
	}
	return 0
}
