package projects

import (
	"errors"
	"net/http"

	"estate-cms/internal/api/shared"
	dp "estate-cms/internal/domain/projects"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	env     shared.Env
	service *dp.Service
}

func New(env shared.Env, service *dp.Service) *Handler {
	return &Handler{env: env, service: service}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		shared.NotFound(c, "Project not found")
		return
	}
	shared.Fail(c, h.env.Log, err, "Failed to save project")
}

func (h *Handler) input(c *gin.Context) (dp.Input, error) {
	body, err := shared.ReadBody(c, h.env.Limits)
	if err != nil {
		return dp.Input{}, err
	}
	return dp.Input{
		Fields:   body.Fields,
		Files:    body.Files,
		BaseURL:  shared.BaseURL(c, h.env.PublicBaseURL),
		Category: shared.Category(c, body.Fields),
	}, nil
}

// POST /projects
func (h *Handler) Create(c *gin.Context) {
	in, err := h.input(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	project, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GET /projects and GET /dashboard/master
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /projects/:id
func (h *Handler) Get(c *gin.Context) {
	project, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// PUT /projects/:id
// Sections left out of the body keep their stored values; image leaves
// that changed have their old files removed once the update is saved.
func (h *Handler) Update(c *gin.Context) {
	in, err := h.input(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	project, err := h.service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DELETE /projects/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// GET /projects-count
func (h *Handler) Count(c *gin.Context) {
	n, err := h.service.Count(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// GET /projects-zones
func (h *Handler) Zones(c *gin.Context) {
	zones, err := h.service.Zones(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GET /dashboard/home
func Home(c *gin.Context) {
	c.String(http.StatusOK, "hello friend")
}
