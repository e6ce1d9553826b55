package shared

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"estate-cms/internal/apperr"
	"estate-cms/internal/domain/media"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Fail renders err as a JSON error response. Client errors keep their
// message; anything else is logged and reported with fallback.
func Fail(c *gin.Context, log logrus.FieldLogger, err error, fallback string) {
	if e, ok := apperr.As(err); ok {
		if e.Status == http.StatusRequestEntityTooLarge {
			c.JSON(e.Status, gin.H{"error": e.Message, "message": e.Details})
			return
		}
		body := gin.H{"error": e.Message}
		if e.Details != nil {
			body["details"] = e.Details
		}
		c.JSON(e.Status, body)
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := fieldErrors(verrs)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgs[verrs[0].Field()], "details": msgs})
		return
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// NotFound renders a 404 with a resource-specific message.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// BindError marks gin binding failures (bad JSON, wrong types) as client
// errors. Validator failures pass through for field-level rendering.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Validation("Invalid request body: %v", err)
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		label := humanize(fe.Field())
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = label + " is required"
		case "oneof":
			out[fe.Field()] = fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
		default:
			out[fe.Field()] = fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
		}
	}
	return out
}

// humanize turns a Go field name into a label: "JobType" -> "Job type".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BaseURL is the scheme and host image URLs are built from. A configured
// public base wins over the request's own view of itself.
func BaseURL(c *gin.Context, public string) string {
	if public != "" {
		return strings.TrimRight(public, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = strings.TrimSpace(strings.Split(p, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}

// UploadCategoryKey is the gin context key the route middleware sets.
const UploadCategoryKey = "upload_category"

// Category resolves the storage category for this request.
func Category(c *gin.Context, fields map[string]any) string {
	src := media.CategorySources{
		Route: c.GetString(UploadCategoryKey),
		Query: c.Query("category"),
		Path:  c.Request.URL.Path,
	}
	if s, ok := fields["category"].(string); ok {
		src.Body = s
	}
	return media.ResolveCategory(src)
}
