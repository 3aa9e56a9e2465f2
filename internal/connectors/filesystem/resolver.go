package filesystem

import (
	"net/url"
	"path/filepath"
	"strings"
)

// IsLocal reports whether a locator names a local file rather than a URL.
func IsLocal(locator string) bool {
	if strings.HasPrefix(locator, "file://") {
		return true
	}
	return filepath.IsAbs(locator) || strings.HasPrefix(locator, "./") || strings.HasPrefix(locator, "../")
}

// ResolvePath converts a file:// URI or bare path to a cleaned local path.
// Percent escapes in file URIs are decoded.
func ResolvePath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		p := strings.TrimPrefix(uri, "file://")
		p = strings.TrimPrefix(p, "localhost")
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		return filepath.Clean(p)
	}
	return filepath.Clean(uri)
}
