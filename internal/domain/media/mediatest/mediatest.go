// Package mediatest builds image payloads for tests.
package mediatest

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"testing"
)

// PNGBase64 is a 1x1 transparent PNG.
const PNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func PNG() []byte {
	data, err := base64.StdEncoding.DecodeString(PNGBase64)
	if err != nil {
		panic(err)
	}
	return data
}

// DataURI returns the PNG as a data URI, the way browsers send it.
func DataURI() string {
	return "data:image/png;base64," + PNGBase64
}

// FileHeader round-trips data through a multipart form so the header can be opened.
func FileHeader(t testing.TB, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}
