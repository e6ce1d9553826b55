package homehero

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
	repo store.Repository[content.HomeHero]
}

func New(env shared.Env, repo store.Repository[content.HomeHero]) *Handler {
	return &Handler{env: env, repo: repo}
}

// applyText copies the text fields that were sent.
func applyText(hero *content.HomeHero, body *shared.Body) {
	for key, dst := range map[string]*string{
		"title":       &hero.Title,
		"subtitle":    &hero.Subtitle,
		"description": &hero.Description,
		"button_text": &hero.ButtonText,
		"button_link": &hero.ButtonLink,
	} {
		if body.Has(key) {
			*dst = body.String(key)
		}
	}
}

// POST /homehero
func (h *Handler) Create(c *gin.Context) {
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create home hero")
		return
	}
	img, err := h.env.AssignImage(c, body, "image", nil)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create home hero")
		return
	}

	var hero content.HomeHero
	applyText(&hero, body)
	hero.Image = img.Value

	if err := h.repo.Create(c.Request.Context(), &hero); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to create home hero")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": hero})
}

// GET /homehero
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), store.OldestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch home heroes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// GET /homehero/:id
func (h *Handler) Get(c *gin.Context) {
	hero, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": hero})
}

// PUT /homehero/:id
func (h *Handler) Update(c *gin.Context) {
	hero, ok := h.load(c)
	if !ok {
		return
	}
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update home hero")
		return
	}
	img, err := h.env.AssignImage(c, body, "image", hero.Image)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update home hero")
		return
	}
	applyText(hero, body)
	hero.Image = img.Value

	if err := h.repo.Save(c.Request.Context(), hero); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to update home hero")
		return
	}
	h.env.Cleanup(c, img.Superseded)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": hero})
}

// DELETE /homehero/:id
func (h *Handler) Delete(c *gin.Context) {
	hero, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), hero.ID); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to delete home hero")
		return
	}
	if hero.Image != nil {
		h.env.Cleanup(c, *hero.Image)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
}

func (h *Handler) load(c *gin.Context) (*content.HomeHero, bool) {
	hero, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
		return nil, false
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch home hero")
		return nil, false
	}
	return hero, true
}
