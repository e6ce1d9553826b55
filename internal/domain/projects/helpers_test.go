package projects

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"estate-cms/internal/apperr"
	"estate-cms/internal/domain/media"
)

// fakeImages hands out predictable URLs and records deletions.
type fakeImages struct {
	mu      sync.Mutex
	n       int
	puts    []media.Payload
	deleted []string
}

func (f *fakeImages) Put(_ context.Context, baseURL, category string, p media.Payload) (string, error) {
	switch p.Kind {
	case media.Absent:
		return "", nil
	case media.ExistingURL:
		return p.URL, nil
	case media.Base64:
		if strings.Contains(p.Data, "corrupt") {
			return "", apperr.Validation("Invalid base64 image data")
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	f.puts = append(f.puts, p)
	name := "image.png"
	if p.Kind == media.Uploaded {
		name = p.File.Filename
	}
	return fmt.Sprintf("%s/uploads/%s/%d-%s", baseURL, media.SanitizeCategory(category), f.n, name), nil
}

func (f *fakeImages) Delete(_ context.Context, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
}

func section(doc Document, name string) map[string]any {
	m, _ := doc[name].(map[string]any)
	return m
}

func item(doc Document, name string, i int) map[string]any {
	list, _ := doc[name].([]any)
	if i >= len(list) {
		return nil
	}
	m, _ := list[i].(map[string]any)
	return m
}

func list(urls ...string) []any {
	out := make([]any, len(urls))
	for i, u := range urls {
		out[i] = u
	}
	return out
}
