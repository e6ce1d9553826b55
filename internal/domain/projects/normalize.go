package projects

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"sort"
	"strings"

	"estate-cms/internal/apperr"
	"estate-cms/internal/domain/media"

	"github.com/sirupsen/logrus"
)

// ImageStore is what the normalizer needs from media.Store.
type ImageStore interface {
	Put(ctx context.Context, baseURL, category string, p media.Payload) (string, error)
	Delete(ctx context.Context, url string)
}

type Normalizer struct {
	images ImageStore
	log    *logrus.Logger
}

func NewNormalizer(images ImageStore, log *logrus.Logger) *Normalizer {
	return &Normalizer{images: images, log: log}
}

// Input is one decoded create/update request.
type Input struct {
	Fields   map[string]any
	Files    map[string][]*multipart.FileHeader
	BaseURL  string
	Category string
}

// Normalized is a request document ready for persistence, plus the URLs of
// the images written while producing it.
//
// Partial names top-level sections the request never sent that were built
// here from a root project_logo or an upload tag. They hold only image leaves.
type Normalized struct {
	Document Document
	Created  []string
	Partial  []string
}

// Normalize turns a raw request into a Document whose image leaves are
// either null or non-empty lists of stored URLs. Leaves the request never
// mentioned stay absent. On error, images written by this call are removed.
func (n *Normalizer) Normalize(ctx context.Context, in Input) (*Normalized, error) {
	doc := make(Document, len(in.Fields))
	for k, v := range in.Fields {
		doc[k] = v
	}
	delete(doc, "category")

	decodeSections(doc)
	coerceFlags(doc)
	if err := validateShapes(doc); err != nil {
		return nil, err
	}
	partial := map[string]bool{}
	if mergeLogo(doc) {
		partial["project"] = true
	}

	plan, err := n.planUploads(doc, in.Files, partial)
	if err != nil {
		return nil, err
	}

	var created []string
	put := func(p media.Payload) (string, error) {
		url, err := n.images.Put(ctx, in.BaseURL, in.Category, p)
		if err == nil && p.Kind != media.ExistingURL {
			created = append(created, url)
		}
		return url, err
	}
	rollback := func(err error) (*Normalized, error) {
		media.DeleteAll(ctx, n.images, created)
		return nil, err
	}

	uploaded := map[leafRef]bool{}
	for _, a := range plan {
		urls := make([]any, 0, len(a.files))
		for _, fh := range a.files {
			url, err := put(media.FromUpload(fh))
			if err != nil {
				return rollback(err)
			}
			urls = append(urls, url)
		}
		a.container[a.slot.Field] = urls
		uploaded[a.ref] = true
	}

	for si, s := range Slots {
		for i, c := range s.containers(doc) {
			if c == nil || uploaded[leafRef{si, i}] {
				continue
			}
			v, present := c[s.Field]
			if !present {
				continue
			}
			leaf, err := resolveLeaf(v, put)
			if err != nil {
				return rollback(err)
			}
			c[s.Field] = leaf
		}
	}

	out := &Normalized{Document: doc, Created: created}
	for name := range partial {
		out.Partial = append(out.Partial, name)
	}
	sort.Strings(out.Partial)
	return out, nil
}

type leafRef struct {
	slot  int
	index int
}

type assignment struct {
	ref       leafRef
	slot      Slot
	container map[string]any
	files     []*multipart.FileHeader
}

// planUploads matches upload tags to leaves before anything is written, so an
// out-of-range tag fails the request with no files stored.
func (n *Normalizer) planUploads(doc Document, files map[string][]*multipart.FileHeader, partial map[string]bool) ([]*assignment, error) {
	if len(files) == 0 {
		return nil, nil
	}
	tags := make([]string, 0, len(files))
	for tag := range files {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var plan []*assignment
	byRef := map[leafRef]*assignment{}
	for _, tag := range tags {
		slot, idx, ok := MatchTag(tag)
		if !ok {
			n.log.WithField("field", tag).Debug("ignoring upload for unknown project field")
			continue
		}
		si := slotIndex(slot)
		ref := leafRef{si, idx}

		a, seen := byRef[ref]
		if !seen {
			container, err := uploadContainer(doc, slot, idx, tag, partial)
			if err != nil {
				return nil, err
			}
			a = &assignment{ref: ref, slot: slot, container: container}
			byRef[ref] = a
			plan = append(plan, a)
		}
		a.files = append(a.files, files[tag]...)
	}
	return plan, nil
}

func uploadContainer(doc Document, slot Slot, idx int, tag string, partial map[string]bool) (map[string]any, error) {
	if !slot.List {
		if m, ok := doc[slot.Section].(map[string]any); ok {
			return m, nil
		}
		if _, sent := doc[slot.Section]; !sent {
			partial[slot.Section] = true
		}
		m := map[string]any{}
		doc[slot.Section] = m
		return m, nil
	}
	cs := slot.containers(doc)
	if idx >= len(cs) || cs[idx] == nil {
		return nil, apperr.Validation("Upload %s has no matching %s entry", tag, slot.prefix())
	}
	return cs[idx], nil
}

func slotIndex(s Slot) int {
	for i, o := range Slots {
		if o == s {
			return i
		}
	}
	return -1
}

// resolveLeaf stores any inline image data in v and returns the cleaned leaf:
// nil, or a non-empty []any of URL strings.
func resolveLeaf(v any, put func(media.Payload) (string, error)) (any, error) {
	var raw []any
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		raw = []any{t}
	case []any:
		raw = t
	case []string:
		for _, s := range t {
			raw = append(raw, s)
		}
	default:
		return nil, nil
	}

	out := make([]any, 0, len(raw))
	for _, e := range raw {
		s, ok := e.(string)
		if !ok {
			continue
		}
		p := media.Classify(s)
		if p.Kind == media.Absent {
			continue
		}
		url, err := put(p)
		if err != nil {
			return nil, err
		}
		out = append(out, url)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// decodeSections parses sections that arrived JSON-encoded. A value that does
// not parse is left as the raw string.
func decodeSections(doc Document) {
	for _, name := range encodedSections {
		s, ok := doc[name].(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || trimmed == "null" {
			doc[name] = nil
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			doc[name] = v
		}
	}
}

// coerceFlags turns multipart "true"/"false" strings into booleans.
func coerceFlags(doc Document) {
	if s, ok := doc["fresh_project"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "on":
			doc["fresh_project"] = true
		case "false", "0", "off", "":
			doc["fresh_project"] = false
		}
	}
}

func validateShapes(doc Document) error {
	for _, name := range objectSections {
		v, ok := doc[name]
		if !ok || v == nil {
			continue
		}
		if _, isMap := v.(map[string]any); !isMap {
			return apperr.Validation("Field %s must be an object", name)
		}
	}
	for _, name := range listSections {
		if err := validateList(doc[name], name); err != nil {
			return err
		}
	}
	if lf, ok := doc["layout_and_floorplan"].(map[string]any); ok {
		if err := validateList(lf["layouts"], "layout_and_floorplan.layouts"); err != nil {
			return err
		}
	}
	return nil
}

func validateList(v any, name string) error {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return apperr.Validation("Field %s must be an array", name)
	}
	for i, e := range list {
		if _, isMap := e.(map[string]any); !isMap {
			return apperr.Validation("Field %s[%d] must be an object", name, i)
		}
	}
	return nil
}

// mergeLogo folds the legacy project_info section and a root-level
// project_logo into project.project_logo, nested entries first. It reports
// whether the project section had to be created for the root logo.
func mergeLogo(doc Document) bool {
	info, hasInfo := doc["project_info"]
	delete(doc, "project_info")
	if hasInfo {
		doc["project"] = info
	}

	root, hasRoot := doc["project_logo"]
	delete(doc, "project_logo")
	if !hasRoot {
		return false
	}

	created := false
	section, _ := doc["project"].(map[string]any)
	if section == nil {
		_, sent := doc["project"]
		created = !sent
		section = map[string]any{}
		doc["project"] = section
	}

	nested, hasNested := section["project_logo"]
	if !hasNested {
		section["project_logo"] = root
		return created
	}
	section["project_logo"] = append(asList(nested), asList(root)...)
	return created
}

func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{t}
	}
}
