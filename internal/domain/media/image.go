package media

import (
	"mime/multipart"
	"strings"
)

type Kind int

const (
	Absent Kind = iota
	Uploaded
	Base64
	ExistingURL
)

func (k Kind) String() string {
	switch k {
	case Uploaded:
		return "upload"
	case Base64:
		return "base64"
	case ExistingURL:
		return "url"
	default:
		return "absent"
	}
}

// Payload is one incoming image value.
type Payload struct {
	Kind Kind
	File *multipart.FileHeader // Uploaded
	Data string                // Base64, with or without a data-URI prefix
	URL  string                // ExistingURL
}

func FromUpload(fh *multipart.FileHeader) Payload {
	if fh == nil {
		return Payload{}
	}
	return Payload{Kind: Uploaded, File: fh}
}

// Classify decides what a JSON string image value holds. Strings that are
// neither encoded data nor URLs are Absent.
func Classify(s string) Payload {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Payload{}
	case LooksLikeBase64(s):
		return Payload{Kind: Base64, Data: s}
	case looksLikeURL(s):
		return Payload{Kind: ExistingURL, URL: s}
	default:
		return Payload{}
	}
}

// LooksLikeBase64 treats data URIs, anything carrying ";base64," and long
// strings that are not URLs as encoded image content.
func LooksLikeBase64(s string) bool {
	if strings.HasPrefix(s, "data:") || strings.Contains(s, ";base64,") {
		return true
	}
	return len(s) > 100 && !looksLikeURL(s)
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "/")
}
