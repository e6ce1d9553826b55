package shared

import (
	"estate-cms/internal/domain/media"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Env is what every resource handler needs besides its repository.
type Env struct {
	Images        media.Images
	Log           *logrus.Logger
	Limits        Limits
	PublicBaseURL string
}

// AssignImage resolves the single image field of body against current.
func (e Env) AssignImage(c *gin.Context, body *Body, field string, current *string) (media.Single, error) {
	p := media.PayloadOf(body.File(field), body.Fields[field])
	return media.AssignSingle(c.Request.Context(), e.Images, BaseURL(c, e.PublicBaseURL), Category(c, body.Fields), p, current)
}

// AssignImages resolves an image list from every uploaded file, or from
// body[field] when nothing was uploaded.
func (e Env) AssignImages(c *gin.Context, body *Body, field string, current []string) (media.List, error) {
	return media.AssignList(c.Request.Context(), e.Images, BaseURL(c, e.PublicBaseURL), Category(c, body.Fields),
		body.AllFiles(), body.Fields[field], body.Has(field), current)
}

// Cleanup deletes images best effort. Empty entries are skipped.
func (e Env) Cleanup(c *gin.Context, urls ...string) {
	media.DeleteAll(c.Request.Context(), e.Images, urls)
}
