package media

import (
	"regexp"
	"strings"
)

/*
	Category helpers
	----------------
	- A category is the first path segment under /uploads/
	- Always [a-z0-9_-], never empty
*/

const DefaultCategory = "general"

var nonCategory = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// routeCategories maps an API path prefix to the category its images live in.
var routeCategories = []struct {
	prefix   string
	category string
}{
	{"/projects", "projects"},
	{"/reviews", "reviews"},
	{"/homehero", "homehero"},
	{"/homeabout", "homeabout"},
	{"/amenities", "amenities"},
	{"/paymentlist", "paymentlist"},
	{"/associatedeveloper", "associatedeveloper"},
}

// SanitizeCategory strips everything outside [a-zA-Z0-9_-] and lowercases.
// Example: "Pay$$ments!!" -> "payments"
func SanitizeCategory(raw string) string {
	c := strings.ToLower(nonCategory.ReplaceAllString(strings.TrimSpace(raw), ""))
	if c == "" {
		return DefaultCategory
	}
	return c
}

// CategoryFromPath guesses a category from the request path.
func CategoryFromPath(path string) string {
	for _, rc := range routeCategories {
		if strings.Contains(path, rc.prefix) {
			return rc.category
		}
	}
	return ""
}

// CategorySources are the places a request may name its category, highest priority first.
type CategorySources struct {
	Route string // set by route middleware
	Query string
	Body  string
	Path  string
}

// ResolveCategory picks the first non-empty source and sanitizes it.
func ResolveCategory(src CategorySources) string {
	for _, c := range []string{src.Route, src.Query, src.Body} {
		if strings.TrimSpace(c) != "" {
			return SanitizeCategory(c)
		}
	}
	if c := CategoryFromPath(src.Path); c != "" {
		return c
	}
	return DefaultCategory
}
