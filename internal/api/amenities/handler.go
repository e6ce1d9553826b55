package amenities

import (
	"errors"
	"net/http"

	"estate-cms/internal/api/shared"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	env  shared.Env
	repo store.Repository[content.Amenity]
}

func New(env shared.Env, repo store.Repository[content.Amenity]) *Handler {
	return &Handler{env: env, repo: repo}
}

// POST /amenities
func (h *Handler) Create(c *gin.Context) {
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create amenity")
		return
	}
	title := body.String("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	img, err := h.env.AssignImage(c, body, "image", nil)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create amenity")
		return
	}

	amenity := content.Amenity{Title: title, Image: img.Value}
	if err := h.repo.Create(c.Request.Context(), &amenity); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to create amenity")
		return
	}
	c.JSON(http.StatusCreated, amenity)
}

// GET /amenities
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), store.OldestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch amenities")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /amenities/:id
func (h *Handler) Get(c *gin.Context) {
	amenity, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, amenity)
}

// PUT /amenities/:id
func (h *Handler) Update(c *gin.Context) {
	amenity, ok := h.load(c)
	if !ok {
		return
	}
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update amenity")
		return
	}
	if body.Has("title") {
		if amenity.Title = body.String("title"); amenity.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
	}

	img, err := h.env.AssignImage(c, body, "image", amenity.Image)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update amenity")
		return
	}
	amenity.Image = img.Value

	if err := h.repo.Save(c.Request.Context(), amenity); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to update amenity")
		return
	}
	h.env.Cleanup(c, img.Superseded)
	c.JSON(http.StatusOK, amenity)
}

// DELETE /amenities/:id
func (h *Handler) Delete(c *gin.Context) {
	amenity, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), amenity.ID); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to delete amenity")
		return
	}
	if amenity.Image != nil {
		h.env.Cleanup(c, *amenity.Image)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Amenity deleted"})
}

func (h *Handler) load(c *gin.Context) (*content.Amenity, bool) {
	amenity, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		shared.NotFound(c, "Amenity not found")
		return nil, false
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch amenity")
		return nil, false
	}
	return amenity, true
}
