package reviews

import (
	"errors"
	"net/http"

	"estate-cms/internal/api/shared"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	env  shared.Env
	repo store.Repository[content.Review]
}

func New(env shared.Env, repo store.Repository[content.Review]) *Handler {
	return &Handler{env: env, repo: repo}
}

// ------------------------------------------------------------
// POST /reviews
// ------------------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create review")
		return
	}

	img, err := h.env.AssignImage(c, body, "image", nil)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create review")
		return
	}

	review := content.Review{
		Name:    body.String("name"),
		Work:    body.String("work"),
		Message: body.String("message"),
		Image:   img.Value,
	}
	if err := h.repo.Create(c.Request.Context(), &review); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to create review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// ------------------------------------------------------------
// GET /reviews
// ------------------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	reviews, err := h.repo.List(c.Request.Context(), store.NewestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// ------------------------------------------------------------
// GET /reviews/:id
// ------------------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	review, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// ------------------------------------------------------------
// PUT /reviews/:id
// ------------------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	review, ok := h.load(c)
	if !ok {
		return
	}

	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update review")
		return
	}

	img, err := h.env.AssignImage(c, body, "image", review.Image)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update review")
		return
	}

	if body.Has("name") {
		review.Name = body.String("name")
	}
	if body.Has("work") {
		review.Work = body.String("work")
	}
	if body.Has("message") {
		review.Message = body.String("message")
	}
	review.Image = img.Value

	if err := h.repo.Save(c.Request.Context(), review); err != nil {
		h.env.Cleanup(c, img.Created)
		shared.Fail(c, h.env.Log, err, "Failed to update review")
		return
	}
	h.env.Cleanup(c, img.Superseded)

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// ------------------------------------------------------------
// DELETE /reviews/:id
// ------------------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	review, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), review.ID); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to delete review")
		return
	}
	if review.Image != nil {
		h.env.Cleanup(c, *review.Image)
	}

	h.env.Log.WithFields(logrus.Fields{"review": review.ID}).Info("review deleted")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}

func (h *Handler) load(c *gin.Context) (*content.Review, bool) {
	review, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
		return nil, false
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch review")
		return nil, false
	}
	return review, true
}
