package media

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"estate-cms/internal/apperr"
	"estate-cms/internal/domain/media/mediatest"
	"estate-cms/internal/infra/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	backend, err := NewLocalBackend(root)
	require.NoError(t, err)
	s := NewStore(backend, logging.Discard())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, root
}

func TestPutBase64RoundTrip(t *testing.T) {
	s, root := newLocalStore(t)
	ctx := context.Background()

	url, err := s.Put(ctx, "http://localhost:5000", "Pay$$ments!!", Classify(mediatest.DataURI()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/payments/1700000000000-"), url)
	assert.True(t, strings.HasSuffix(url, "-image.png"), url)

	key, ok := KeyFromURL(url)
	require.True(t, ok)
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, mediatest.PNG(), data)

	obj, err := s.Open(ctx, key)
	require.NoError(t, err)
	defer obj.Body.Close()
	assert.Equal(t, "image/png", obj.ContentType)
	served, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, mediatest.PNG(), served)
}

func TestPutBareBase64(t *testing.T) {
	s, _ := newLocalStore(t)

	url, err := s.Put(context.Background(), "http://h", "reviews", Payload{Kind: Base64, Data: mediatest.PNGBase64})
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/reviews/")
}

func TestPutUpload(t *testing.T) {
	s, root := newLocalStore(t)
	fh := mediatest.FileHeader(t, "image", "my photo.png", mediatest.PNG())

	url, err := s.Put(context.Background(), "https://cms.example.com", "", FromUpload(fh))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cms.example.com/uploads/general/"), url)
	assert.True(t, strings.HasSuffix(url, "-my_photo.png"), url)

	entries, err := os.ReadDir(filepath.Join(root, "general"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".upload-"))
}

func TestPutRejectsNonImageUpload(t *testing.T) {
	s, root := newLocalStore(t)
	fh := mediatest.FileHeader(t, "image", "notes.txt", []byte("just some text, nothing to see"))

	_, err := s.Put(context.Background(), "http://h", "reviews", FromUpload(fh))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, statErr := os.Stat(filepath.Join(root, "reviews"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPutMalformedBase64(t *testing.T) {
	s, _ := newLocalStore(t)

	_, err := s.Put(context.Background(), "http://h", "reviews", Payload{Kind: Base64, Data: "data:image/png;base64,@@@not-base64@@@"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestPutPassThrough(t *testing.T) {
	s, _ := newLocalStore(t)

	url, err := s.Put(context.Background(), "http://h", "x", Classify("http://h/uploads/x/a.png"))
	require.NoError(t, err)
	assert.Equal(t, "http://h/uploads/x/a.png", url)

	url, err = s.Put(context.Background(), "http://h", "x", Payload{})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestDeleteIsBestEffort(t *testing.T) {
	s, root := newLocalStore(t)
	ctx := context.Background()

	url, err := s.Put(ctx, "http://h", "reviews", Classify(mediatest.DataURI()))
	require.NoError(t, err)
	key, _ := KeyFromURL(url)
	path := filepath.Join(root, filepath.FromSlash(key))

	s.Delete(ctx, url)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	assert.NotPanics(t, func() {
		s.Delete(ctx, url)
		s.Delete(ctx, "https://elsewhere.example.com/a.png")
		s.Delete(ctx, "/uploads/../../etc/passwd")
		DeleteAll(ctx, s, []string{"", "/uploads/general/missing.png"})
	})
}

func TestDeleteSkipsForeignHosts(t *testing.T) {
	root := t.TempDir()
	backend, err := NewLocalBackend(root)
	require.NoError(t, err)
	s := NewStore(backend, logging.Discard(), WithHosts("CMS.test", ""))
	ctx := context.Background()

	url, err := s.Put(ctx, "http://cms.test", "reviews", Classify(mediatest.DataURI()))
	require.NoError(t, err)
	key, _ := KeyFromURL(url)
	path := filepath.Join(root, filepath.FromSlash(key))

	s.Delete(ctx, "https://elsewhere.example"+uploadsPrefix+key)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "foreign host must not remove the local file")

	s.Delete(ctx, uploadsPrefix+key)
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	url, err = s.Put(ctx, "http://cms.test", "reviews", Classify(mediatest.DataURI()))
	require.NoError(t, err)
	key, _ = KeyFromURL(url)
	s.Delete(ctx, url)
	_, statErr = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalBackendWriteIsAtomic(t *testing.T) {
	root := t.TempDir()
	b, err := NewLocalBackend(root)
	require.NoError(t, err)

	require.NoError(t, b.Write(context.Background(), "general/a.png", bytes.NewReader(mediatest.PNG()), 0, "image/png"))
	entries, err := os.ReadDir(filepath.Join(root, "general"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.png", entries[0].Name())

	assert.Error(t, b.Write(context.Background(), "../escape.png", bytes.NewReader(nil), 0, ""))
	assert.ErrorIs(t, b.Remove(context.Background(), "general/none.png"), ErrObjectNotFound)
	_, err = b.Open(context.Background(), "general")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
