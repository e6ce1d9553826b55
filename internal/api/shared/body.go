package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"estate-cms/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Limits bound a single request.
type Limits struct {
	MaxFileSize  int64
	MaxFiles     int
	MaxBodyBytes int64
}

var DefaultLimits = Limits{
	MaxFileSize:  10 << 20,
	MaxFiles:     50,
	MaxBodyBytes: 50 << 20,
}

const multipartMemory = 32 << 20

// Body is a decoded create/update request: JSON, multipart or urlencoded.
type Body struct {
	Fields map[string]any
	Files  map[string][]*multipart.FileHeader
}

// Has reports whether key was sent at all (null counts as sent).
func (b *Body) Has(key string) bool {
	_, ok := b.Fields[key]
	return ok
}

// String returns a text field, or "" when absent or not a string.
func (b *Body) String(key string) string {
	s, _ := b.Fields[key].(string)
	return strings.TrimSpace(s)
}

// File returns the first upload under field.
func (b *Body) File(field string) *multipart.FileHeader {
	if fhs := b.Files[field]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

// AllFiles returns every upload regardless of field, ordered by field name
// then arrival.
func (b *Body) AllFiles() []*multipart.FileHeader {
	fields := make([]string, 0, len(b.Files))
	for f := range b.Files {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []*multipart.FileHeader
	for _, f := range fields {
		out = append(out, b.Files[f]...)
	}
	return out
}

// ReadBody decodes the request body according to its content type.
func ReadBody(c *gin.Context, limits Limits) (*Body, error) {
	body := &Body{Fields: map[string]any{}, Files: map[string][]*multipart.FileHeader{}}
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return body, nil
	}

	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err, limits)
		}
		form := c.Request.MultipartForm
		copyValues(body.Fields, form.Value)

		count := 0
		for field, fhs := range form.File {
			for _, fh := range fhs {
				count++
				if count > limits.MaxFiles {
					return nil, tooManyFiles(limits)
				}
				if fh.Size > limits.MaxFileSize {
					return nil, fileTooLarge(limits)
				}
			}
			body.Files[field] = fhs
		}
		return body, nil

	case "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, bodyError(err, limits)
		}
		copyValues(body.Fields, c.Request.PostForm)
		return body, nil

	default:
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, bodyError(err, limits)
		}
		if len(strings.TrimSpace(string(raw))) == 0 {
			return body, nil
		}
		if err := json.Unmarshal(raw, &body.Fields); err != nil {
			return nil, apperr.Validation("Malformed JSON")
		}
		if body.Fields == nil {
			body.Fields = map[string]any{}
		}
		return body, nil
	}
}

// copyValues flattens form values: one value stays a string, repeats become
// a list. "images[]" style keys lose their brackets.
func copyValues(dst map[string]any, src map[string][]string) {
	for k, vs := range src {
		key := strings.TrimSuffix(k, "[]")
		if len(vs) == 1 && !strings.HasSuffix(k, "[]") {
			dst[key] = vs[0]
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		dst[key] = list
	}
}

func bodyError(err error, limits Limits) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return apperr.TooLarge("Request too large", fmt.Sprintf("Request body exceeds the limit of %s", humanBytes(mbe.Limit)))
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return tooManyFiles(limits)
	}
	return apperr.Validation("Invalid body: %v", err)
}

func fileTooLarge(limits Limits) error {
	return apperr.TooLarge("File too large", fmt.Sprintf("File size exceeds the limit of %s", humanBytes(limits.MaxFileSize)))
}

func tooManyFiles(limits Limits) error {
	return apperr.TooLarge("Too many files", fmt.Sprintf("Number of files exceeds the limit of %d", limits.MaxFiles))
}

func humanBytes(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}
