package projects

import (
	"fmt"
	"regexp"
	"strconv"

	"estate-cms/internal/domain/media"
)

// Document is a project as free-form JSON: section name -> section value.
type Document = map[string]any

// Sections that clients may send as JSON-encoded strings (multipart forms).
var encodedSections = []string{
	"project_info",
	"project",
	"hero",
	"overview",
	"amenities",
	"highlights",
	"zones",
	"location_advantage",
	"layout_and_floorplan",
	"about",
}

var (
	objectSections = []string{"project_info", "project", "hero", "overview", "about", "layout_and_floorplan"}
	listSections   = []string{"highlights", "zones"}
)

// Slot locates one image leaf in the document schema.
//
//	Section           top-level key
//	Sub               list key inside Section (layouts), or ""
//	List              the leaf lives in each element of a list
//	Field             leaf key
type Slot struct {
	Section string
	Sub     string
	List    bool
	Field   string
}

// Slots is the fixed set of image leaves a project can carry.
var Slots = []Slot{
	{Section: "project", Field: "project_logo"},
	{Section: "hero", Field: "hero_images"},
	{Section: "overview", Field: "overview_gallery_images"},
	{Section: "highlights", List: true, Field: "image"},
	{Section: "zones", List: true, Field: "image"},
	{Section: "layout_and_floorplan", Sub: "layouts", List: true, Field: "image"},
	{Section: "about", Field: "left_image"},
}

func (s Slot) prefix() string {
	if s.Sub != "" {
		return s.Section + "." + s.Sub
	}
	return s.Section
}

// Tag is the multipart field name addressing this slot at index i.
func (s Slot) Tag(i int) string {
	if s.List {
		return fmt.Sprintf("%s[%d].%s", s.prefix(), i, s.Field)
	}
	return s.Section + "." + s.Field
}

func (s Slot) pattern() *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(s.prefix()) + `\[(\d+)\]\.` + regexp.QuoteMeta(s.Field) + `$`)
}

var slotPatterns = func() map[int]*regexp.Regexp {
	out := map[int]*regexp.Regexp{}
	for i, s := range Slots {
		if s.List {
			out[i] = s.pattern()
		}
	}
	return out
}()

// logoTags are accepted for the project logo besides its canonical tag.
var logoTags = map[string]bool{
	"project_logo":              true,
	"project.project_logo":      true,
	"project_info.project_logo": true,
}

// MatchTag resolves an upload field name to a slot and list index.
func MatchTag(tag string) (Slot, int, bool) {
	if logoTags[tag] {
		return Slots[0], 0, true
	}
	for i, s := range Slots {
		if !s.List {
			if tag == s.Tag(0) {
				return s, 0, true
			}
			continue
		}
		m := slotPatterns[i].FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return Slot{}, 0, false
		}
		return s, idx, true
	}
	return Slot{}, 0, false
}

// holder returns the value that directly contains the slot's leaf or leaves:
// the section object, or the list of element objects.
func (s Slot) holder(doc Document) (any, bool) {
	sec, ok := doc[s.Section]
	if !ok {
		return nil, false
	}
	if s.Sub == "" {
		return sec, true
	}
	m, isMap := sec.(map[string]any)
	if !isMap {
		return nil, sec == nil
	}
	v, ok := m[s.Sub]
	return v, ok
}

// containers lists the objects holding the leaf, in position order.
// Non-object list members are reported as nil so indexes stay aligned.
func (s Slot) containers(doc Document) []map[string]any {
	h, ok := s.holder(doc)
	if !ok || h == nil {
		return nil
	}
	if !s.List {
		if m, ok := h.(map[string]any); ok {
			return []map[string]any{m}
		}
		return nil
	}
	list, ok := h.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, len(list))
	for i, e := range list {
		out[i], _ = e.(map[string]any)
	}
	return out
}

// URLs collects every stored image URL in doc.
func URLs(doc Document) []string {
	var out []string
	for _, s := range Slots {
		for _, c := range s.containers(doc) {
			if c == nil {
				continue
			}
			out = append(out, media.Strings(c[s.Field])...)
		}
	}
	return out
}
