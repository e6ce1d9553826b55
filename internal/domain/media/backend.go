package media

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"
)

var ErrObjectNotFound = errors.New("image object not found")

// Object is a stored image opened for reading.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Backend persists image bytes under keys of the form "<category>/<filename>".
type Backend interface {
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	Open(ctx context.Context, key string) (*Object, error)
}

const uploadsPrefix = "/uploads/"

// KeyFromURL extracts the storage key from an absolute image URL or an
// "/uploads/..." path. ok is false for anything outside the uploads tree.
func KeyFromURL(raw string) (key string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	p := raw
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false
		}
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasPrefix(p, uploadsPrefix) {
		return "", false
	}
	return CleanKey(strings.TrimPrefix(p, uploadsPrefix))
}

// CleanKey rejects traversal and empty segments.
func CleanKey(key string) (string, bool) {
	if key == "" || strings.Contains(key, "\\") {
		return "", false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", false
		}
	}
	return path.Clean(key), true
}
