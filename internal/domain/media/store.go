package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	neturl "net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"estate-cms/internal/apperr"
	"estate-cms/internal/infra/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const base64FileName = "image.png"

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Store turns incoming image payloads into stored files and public URLs.
type Store struct {
	backend Backend
	log     *logrus.Logger
	now     func() time.Time
	hosts   map[string]bool
}

type StoreOption func(*Store)

// WithHosts limits deletes of absolute URLs to these hosts. Without it any
// host is accepted. "/uploads/..." paths are always local.
func WithHosts(hosts ...string) StoreOption {
	return func(s *Store) {
		for _, h := range hosts {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				s.hosts[h] = true
			}
		}
	}
}

func NewStore(backend Backend, log *logrus.Logger, opts ...StoreOption) *Store {
	s := &Store{backend: backend, log: log, now: time.Now, hosts: map[string]bool{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores p under category and returns its URL rooted at baseURL
// (scheme://host). Existing URLs are returned unchanged; Absent yields "".
func (s *Store) Put(ctx context.Context, baseURL, category string, p Payload) (string, error) {
	category = SanitizeCategory(category)

	var (
		data []byte
		name string
		err  error
	)
	switch p.Kind {
	case Absent:
		return "", nil
	case ExistingURL:
		return p.URL, nil
	case Uploaded:
		data, err = readUpload(p)
		if err != nil {
			return "", err
		}
		if !isImage(data) {
			return "", apperr.Validation("Only image files are allowed!")
		}
		name = safeFileName(p.File.Filename)
	case Base64:
		data, err = DecodeBase64(p.Data)
		if err != nil {
			return "", err
		}
		name = base64FileName
	default:
		return "", fmt.Errorf("unknown payload kind %d", p.Kind)
	}

	key := category + "/" + s.fileName(name)
	contentType := mimetype.Detect(data).String()
	if err := s.backend.Write(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("store image %s: %w", key, err)
	}

	metrics.ImagesStored.WithLabelValues(category, p.Kind.String()).Inc()
	s.log.WithFields(logrus.Fields{"key": key, "bytes": len(data), "source": p.Kind.String()}).Debug("image stored")
	return PublicURL(baseURL, key), nil
}

// Delete removes the file behind url. It never fails: missing files and
// foreign URLs are logged and skipped.
func (s *Store) Delete(ctx context.Context, url string) {
	key, ok := KeyFromURL(url)
	if !ok {
		metrics.ImagesDeleted.WithLabelValues("skipped").Inc()
		s.log.WithField("url", url).Debug("not an uploads url, skipping delete")
		return
	}
	if !s.ownsHost(url) {
		metrics.ImagesDeleted.WithLabelValues("skipped").Inc()
		s.log.WithField("url", url).Warn("image url on a foreign host, skipping delete")
		return
	}

	err := s.backend.Remove(context.WithoutCancel(ctx), key)
	switch {
	case err == nil:
		metrics.ImagesDeleted.WithLabelValues("deleted").Inc()
		s.log.WithField("key", key).Debug("image deleted")
	case errors.Is(err, ErrObjectNotFound):
		metrics.ImagesDeleted.WithLabelValues("missing").Inc()
		s.log.WithField("key", key).Warn("image already gone")
	default:
		metrics.ImagesDeleted.WithLabelValues("failed").Inc()
		s.log.WithError(err).WithField("key", key).Error("image delete failed")
	}
}

func (s *Store) ownsHost(raw string) bool {
	if len(s.hosts) == 0 {
		return true
	}
	u, err := neturl.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Host == "" {
		return true
	}
	return s.hosts[strings.ToLower(u.Host)]
}

func (s *Store) Open(ctx context.Context, key string) (*Object, error) {
	return s.backend.Open(ctx, key)
}

func (s *Store) fileName(original string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), token, original)
}

// PublicURL joins baseURL and key into "<base>/uploads/<key>".
func PublicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + uploadsPrefix + key
}

// DecodeBase64 strips an optional data-URI prefix and decodes the rest.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); i >= 0 {
		s = s[i+len(";base64,"):]
	} else if strings.HasPrefix(s, "data:") {
		if j := strings.IndexByte(s, ','); j >= 0 {
			s = s[j+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if data, err := enc.DecodeString(s); err == nil && len(data) > 0 {
			return data, nil
		}
	}
	return nil, apperr.Validation("Invalid base64 image data")
}

func readUpload(p Payload) ([]byte, error) {
	if p.File == nil {
		return nil, apperr.Validation("missing upload")
	}
	f, err := p.File.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", p.File.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", p.File.Filename, err)
	}
	if len(data) == 0 {
		return nil, apperr.Validation("Empty image upload: %s", p.File.Filename)
	}
	return data, nil
}

// isImage walks the detected type and its parents looking for image/*.
func isImage(data []byte) bool {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if strings.HasPrefix(mt.String(), "image/") {
			return true
		}
	}
	return false
}

func safeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Trim(unsafeFileChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return base64FileName
	}
	return name
}
