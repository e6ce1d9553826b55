package homeabout

import (
	"errors"
	"net/http"

	"estate-cms/internal/api/shared"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler serves the single "about" block of the home page.
type Handler struct {
	env  shared.Env
	repo store.Repository[content.HomeAbout]
}

func New(env shared.Env, repo store.Repository[content.HomeAbout]) *Handler {
	return &Handler{env: env, repo: repo}
}

func applyText(about *content.HomeAbout, body *shared.Body) {
	for key, dst := range map[string]*string{
		"title":       &about.Title,
		"subtitle":    &about.Subtitle,
		"description": &about.Description,
	} {
		if body.Has(key) {
			*dst = body.String(key)
		}
	}
}

// POST /homeabout
// Only one entry may exist; later edits go through PUT.
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	_, err := h.repo.First(ctx)
	switch {
	case err == nil:
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "An entry already exists. Use the edit endpoint to update.",
		})
		return
	case !errors.Is(err, store.ErrNotFound):
		shared.Fail(c, h.env.Log, err, "Failed to create home about")
		return
	}

	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create home about")
		return
	}
	img, err := h.env.AssignImage(c, body, "image", nil)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create home about")
		return
	}

	var about content.HomeAbout
	applyText(&about, body)
	about.Image = img.Value

	if err := h.repo.Create(ctx, &about); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to create home about")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": about})
}

// GET /homeabout
func (h *Handler) Get(c *gin.Context) {
	about, err := h.repo.First(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
		return
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch home about")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": about})
}

// PUT /homeabout/:id
func (h *Handler) Update(c *gin.Context) {
	about, ok := h.load(c)
	if !ok {
		return
	}
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update home about")
		return
	}
	img, err := h.env.AssignImage(c, body, "image", about.Image)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update home about")
		return
	}
	applyText(about, body)
	about.Image = img.Value

	if err := h.repo.Save(c.Request.Context(), about); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to update home about")
		return
	}
	h.env.Cleanup(c, img.Superseded)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": about})
}

// DELETE /homeabout/:id
func (h *Handler) Delete(c *gin.Context) {
	about, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), about.ID); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to delete home about")
		return
	}
	if about.Image != nil {
		h.env.Cleanup(c, *about.Image)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
}

func (h *Handler) load(c *gin.Context) (*content.HomeAbout, bool) {
	about, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
		return nil, false
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch home about")
		return nil, false
	}
	return about, true
}
