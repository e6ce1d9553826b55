// Package apitest wires handlers against a temp-dir image store for
// end-to-end handler tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"estate-cms/internal/api/shared"
	"estate-cms/internal/domain/media"
	"estate-cms/internal/infra/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Host is the Host header every request carries, so image URLs start with
// "http://" + Host.
const Host = "cms.test"

// Env returns a handler environment backed by a local store under a temp
// dir, and that dir.
func Env(t testing.TB) (shared.Env, string) {
	t.Helper()
	root := t.TempDir()
	backend, err := media.NewLocalBackend(root)
	require.NoError(t, err)

	log := logging.Discard()
	return shared.Env{
		Images: media.NewStore(backend, log),
		Log:    log,
		Limits: shared.DefaultLimits,
	}, root
}

// JSON sends body as JSON (nil sends no body).
func JSON(t testing.TB, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Host = Host
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// File is one multipart upload.
type File struct {
	Field, Name string
	Data        []byte
}

// Multipart sends fields and files as multipart/form-data.
func Multipart(t testing.TB, h http.Handler, method, path string, fields map[string]string, files ...File) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = fw.Write(f.Data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Host = Host
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the response body into a generic map.
func Decode(t testing.TB, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// Stored reports whether the file behind url exists under root.
func Stored(root, url string) bool {
	key, ok := media.KeyFromURL(url)
	if !ok {
		return false
	}
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	return err == nil
}
