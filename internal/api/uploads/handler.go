// Package uploads serves stored images under /uploads/ from whichever
// backend the image store writes to.
package uploads

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"estate-cms/internal/domain/media"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Opener interface {
	Open(ctx context.Context, key string) (*media.Object, error)
}

type Handler struct {
	files Opener
	log   logrus.FieldLogger
}

func New(files Opener, log logrus.FieldLogger) *Handler {
	return &Handler{files: files, log: log}
}

// GET /uploads/*path
func (h *Handler) Serve(c *gin.Context) {
	key, ok := media.CleanKey(strings.TrimPrefix(c.Param("path"), "/"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	obj, err := h.files.Open(c.Request.Context(), key)
	if errors.Is(err, media.ErrObjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("key", key).Error("open upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer obj.Body.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}
