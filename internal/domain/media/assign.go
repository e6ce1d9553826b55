package media

import (
	"context"
	"mime/multipart"
)

// Images is the store surface used by resource handlers.
type Images interface {
	Put(ctx context.Context, baseURL, category string, p Payload) (string, error)
	Delete(ctx context.Context, url string)
}

// DeleteAll removes each URL best effort. Empty entries are skipped.
func DeleteAll(ctx context.Context, images Images, urls []string) {
	for _, u := range urls {
		if u != "" {
			images.Delete(ctx, u)
		}
	}
}

// PayloadOf picks the payload for a single-image field: an upload wins over
// whatever the body carries.
func PayloadOf(upload *multipart.FileHeader, body any) Payload {
	if upload != nil {
		return FromUpload(upload)
	}
	if s, ok := body.(string); ok {
		return Classify(s)
	}
	return Payload{}
}

// Single is the outcome of assigning one image field.
type Single struct {
	Value      *string
	Superseded string // stored URL no longer referenced, or ""
	Created    string // URL written by this call, or ""
}

// AssignSingle resolves p against the current value. Absent keeps current.
func AssignSingle(ctx context.Context, images Images, baseURL, category string, p Payload, current *string) (Single, error) {
	if p.Kind == Absent {
		return Single{Value: current}, nil
	}
	url, err := images.Put(ctx, baseURL, category, p)
	if err != nil {
		return Single{}, err
	}

	out := Single{Value: &url}
	if p.Kind != ExistingURL {
		out.Created = url
	}
	if current != nil && *current != "" {
		if *current == url {
			out.Value = current
		} else {
			out.Superseded = *current
		}
	}
	return out, nil
}

// List is the outcome of assigning an image-list field.
type List struct {
	Value      []string
	Superseded []string
	Created    []string
}

// AssignList replaces an image list. Uploads win over body; when neither is
// supplied the current list is kept. An empty result is nil.
func AssignList(ctx context.Context, images Images, baseURL, category string, uploads []*multipart.FileHeader, body any, bodyPresent bool, current []string) (List, error) {
	var payloads []Payload
	switch {
	case len(uploads) > 0:
		for _, fh := range uploads {
			payloads = append(payloads, FromUpload(fh))
		}
	case bodyPresent:
		for _, s := range Strings(body) {
			if p := Classify(s); p.Kind != Absent {
				payloads = append(payloads, p)
			}
		}
	default:
		return List{Value: current}, nil
	}

	var out List
	for _, p := range payloads {
		url, err := images.Put(ctx, baseURL, category, p)
		if err != nil {
			DeleteAll(ctx, images, out.Created)
			return List{}, err
		}
		if p.Kind != ExistingURL {
			out.Created = append(out.Created, url)
		}
		out.Value = append(out.Value, url)
	}

	if !Changed(current, out.Value) {
		out.Value = current
		return out, nil
	}
	out.Superseded = Superseded(current, out.Value)
	return out, nil
}
