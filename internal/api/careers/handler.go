package careers

import (
	"errors"
	"net/http"

	"estate-cms/internal/api/shared"
	"estate-cms/internal/domain/content"
	"estate-cms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

const notFound = "Career posting not found"

type Handler struct {
	env  shared.Env
	repo store.Repository[content.Career]
}

func New(env shared.Env, repo store.Repository[content.Career]) *Handler {
	return &Handler{env: env, repo: repo}
}

func requirements(in []string) pq.StringArray {
	if len(in) == 0 {
		return nil
	}
	return pq.StringArray(in)
}

// ------------------------------------------------------------
// POST /careers
// ------------------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.Fail(c, h.env.Log, shared.BindError(err), "Failed to create career")
		return
	}

	career := content.Career{
		Position:        req.Position,
		Department:      req.Department,
		JobType:         req.JobType,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		Description:     req.Description,
		Requirements:    requirements(req.Requirements),
		EndingDate:      req.EndingDate.Value(),
		IsActive:        true,
	}
	if req.SalaryRange != nil {
		career.SalaryRange = *req.SalaryRange
	}
	if req.IsActive != nil {
		career.IsActive = *req.IsActive
	}

	if err := h.repo.Create(c.Request.Context(), &career); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to create career")
		return
	}
	c.JSON(http.StatusCreated, career)
}

// ------------------------------------------------------------
// GET /careers
// ------------------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context(), store.NewestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch careers")
		return
	}
	c.JSON(http.StatusOK, all)
}

// ------------------------------------------------------------
// GET /careers/active
// ------------------------------------------------------------
func (h *Handler) ListActive(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context(), store.NewestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch careers")
		return
	}
	active := make([]content.Career, 0, len(all))
	for _, career := range all {
		if career.IsActive {
			active = append(active, career)
		}
	}
	c.JSON(http.StatusOK, active)
}

// ------------------------------------------------------------
// GET /careers-count
// ------------------------------------------------------------
func (h *Handler) Count(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context(), store.OldestFirst)
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to count careers")
		return
	}
	active := 0
	for _, career := range all {
		if career.IsActive {
			active++
		}
	}
	c.JSON(http.StatusOK, gin.H{"total": len(all), "active": active})
}

// ------------------------------------------------------------
// GET /careers/:id
// ------------------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	career, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, career)
}

// ------------------------------------------------------------
// PUT /careers/:id
// ------------------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	career, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.Fail(c, h.env.Log, shared.BindError(err), "Failed to update career")
		return
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&career.Position, req.Position)
	set(&career.Department, req.Department)
	set(&career.JobType, req.JobType)
	set(&career.Location, req.Location)
	set(&career.ExperienceLevel, req.ExperienceLevel)
	set(&career.SalaryRange, req.SalaryRange)
	set(&career.Description, req.Description)
	if req.Requirements != nil {
		career.Requirements = requirements(*req.Requirements)
	}
	if req.EndingDate.Set {
		career.EndingDate = req.EndingDate.Value()
	}
	if req.IsActive != nil {
		career.IsActive = *req.IsActive
	}

	if err := h.repo.Save(c.Request.Context(), career); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update career")
		return
	}
	c.JSON(http.StatusOK, career)
}

// ------------------------------------------------------------
// PATCH /careers/:id/toggle-status
// ------------------------------------------------------------
func (h *Handler) ToggleStatus(c *gin.Context) {
	career, ok := h.load(c)
	if !ok {
		return
	}
	career.IsActive = !career.IsActive
	if err := h.repo.Save(c.Request.Context(), career); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to update career")
		return
	}

	state := "deactivated"
	if career.IsActive {
		state = "activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": "Career posting " + state, "career": career})
}

// ------------------------------------------------------------
// DELETE /careers/:id
// ------------------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	career, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), career.ID); err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to delete career")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Career posting deleted successfully", "career": career})
}

func (h *Handler) load(c *gin.Context) (*content.Career, bool) {
	career, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		shared.NotFound(c, notFound)
		return nil, false
	}
	if err != nil {
		shared.Fail(c, h.env.Log, err, "Failed to fetch career")
		return nil, false
	}
	return career, true
}
