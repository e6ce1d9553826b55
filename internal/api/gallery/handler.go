// Package gallery serves documents that hold only an ordered list of
// images: payment-method logos and associate-developer logos.
package gallery

import (
	"errors"
	"net/http"
	"strconv"

	"estate-cms/internal/api/shared"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Doc is satisfied by *content.PaymentList and *content.AssociateDeveloper.
type Doc[T any] interface {
	*T
	content.Gallery
}

type Handler[T any, P Doc[T]] struct {
	env  shared.Env
	repo store.Repository[T]
	noun string // "Payment", "Associate Developer"
}

func New[T any, P Doc[T]](env shared.Env, repo store.Repository[T], noun string) *Handler[T, P] {
	return &Handler[T, P]{env: env, repo: repo, noun: noun}
}

func images(v *[]string) pq.StringArray {
	if len(*v) == 0 {
		return nil
	}
	return pq.StringArray(*v)
}

// ------------------------------------------------------------
// POST /<gallery>
// ------------------------------------------------------------
func (h *Handler[T, P]) Create(c *gin.Context) {
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Error creating "+h.noun)
		return
	}
	list, err := h.env.AssignImages(c, body, "images", nil)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Error creating "+h.noun)
		return
	}

	doc := P(new(T))
	*doc.ImageList() = images(&list.Value)
	if err := h.repo.Create(c.Request.Context(), (*T)(doc)); err != nil {
		h.env.Cleanup(c, list.Created...)
		shared.Fail(c, h.env.Log, err, "Error creating "+h.noun)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": h.noun + " created successfully", "data": doc})
}

// ------------------------------------------------------------
// GET /<gallery>
// ------------------------------------------------------------
func (h *Handler[T, P]) List(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context(), store.OldestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Error fetching "+h.noun)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.noun + " fetched successfully", "data": all})
}

// ------------------------------------------------------------
// PUT /<gallery>/:id
// ------------------------------------------------------------
func (h *Handler[T, P]) Update(c *gin.Context) {
	doc, ok := h.load(c)
	if !ok {
		return
	}
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Error updating "+h.noun)
		return
	}

	current := []string(*doc.ImageList())
	list, err := h.env.AssignImages(c, body, "images", current)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Error updating "+h.noun)
		return
	}
	*doc.ImageList() = images(&list.Value)

	if err := h.repo.Save(c.Request.Context(), (*T)(doc)); err != nil {
		h.env.Cleanup(c, list.Created...)
		shared.Fail(c, h.env.Log, err, "Error updating "+h.noun)
		return
	}
	h.env.Cleanup(c, list.Superseded...)
	c.JSON(http.StatusOK, gin.H{"message": h.noun + " updated successfully", "data": doc})
}

// ------------------------------------------------------------
// PUT /<gallery>/:id/:index
// ------------------------------------------------------------
func (h *Handler[T, P]) RemoveImage(c *gin.Context) {
	doc, ok := h.load(c)
	if !ok {
		return
	}

	list := *doc.ImageList()
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 || idx >= len(list) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image index out of range"})
		return
	}

	removed := list[idx]
	rest := make([]string, 0, len(list)-1)
	rest = append(rest, list[:idx]...)
	rest = append(rest, list[idx+1:]...)
	*doc.ImageList() = images(&rest)

	if err := h.repo.Save(c.Request.Context(), (*T)(doc)); err != nil {
		shared.Fail(c, h.env.Log, err, "Error removing image from "+h.noun)
		return
	}
	if !contains(rest, removed) {
		h.env.Cleanup(c, removed)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image removed from " + h.noun + " successfully", "data": doc})
}

// ------------------------------------------------------------
// DELETE /<gallery>/:id
// ------------------------------------------------------------
func (h *Handler[T, P]) Delete(c *gin.Context) {
	doc, ok := h.load(c)
	if !ok {
		return
	}
	id := store.EntityID(doc)
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		shared.Fail(c, h.env.Log, err, "Error deleting "+h.noun)
		return
	}
	h.env.Cleanup(c, *doc.ImageList()...)

	h.env.Log.WithFields(logrus.Fields{"id": id, "images": len(*doc.ImageList())}).Info(h.noun + " deleted")
	c.JSON(http.StatusOK, gin.H{"message": h.noun + " deleted successfully"})
}

func (h *Handler[T, P]) load(c *gin.Context) (P, bool) {
	v, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": h.noun + " not found"})
		return nil, false
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Error fetching "+h.noun)
		return nil, false
	}
	return P(v), true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
