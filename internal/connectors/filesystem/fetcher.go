// Package filesystem reads paper content from local files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.ByteFetcher = (*Fetcher)(nil)

// DefaultMaxBytes bounds a single file read.
const DefaultMaxBytes = 100 << 20

// ErrOutsideRoot is returned for locators that escape the configured root.
var ErrOutsideRoot = errors.New("path is outside the local root")

// Fetcher reads files under a root directory. Relative locators resolve
// against the root.
type Fetcher struct {
	root     string
	maxBytes int64
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithMaxBytes bounds the file size.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// New creates a fetcher confined to root.
func New(root string, opts ...Option) (*Fetcher, error) {
	if root == "" {
		return nil, errors.New("filesystem: root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("filesystem: resolve root: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	f := &Fetcher{root: abs, maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Root returns the absolute root directory.
func (f *Fetcher) Root() string {
	return f.root
}

// Fetch reads the file behind locator. LocalPath is left empty: the file
// belongs to the user and must not be removed by the pipeline.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	path, err := f.resolve(strings.TrimSpace(locator))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDownloadFailed, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrDownloadFailed, path)
	}
	if info.Size() > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrDownloadFailed, path, f.maxBytes)
	}

	file, err := os.Open(path) //nolint:gosec // confined to root by resolve
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrDownloadFailed, path, err)
	}

	return &domain.RawDocument{
		URI:      "file://" + filepath.ToSlash(path),
		MIMEType: detectMIME(path, content),
		Content:  content,
	}, nil
}

func (f *Fetcher) resolve(locator string) (string, error) {
	if locator == "" {
		return "", errors.New("empty locator")
	}
	path := ResolvePath(locator)
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.root, path)
	}

	// Symlinks are followed before the root check so a link cannot escape it.
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	path = resolved

	rel, err := filepath.Rel(f.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return path, nil
}

// detectMIME prefers the extension and falls back to content sniffing.
func detectMIME(path string, content []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return http.DetectContentType(content)
}
