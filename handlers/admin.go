package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/jobs"
	"github.com/lumenworks/sitecms/backend/go-services/internal/models"
	"github.com/lumenworks/sitecms/backend/go-services/internal/navigation"
	"github.com/lumenworks/sitecms/backend/go-services/internal/settings"
	"github.com/lumenworks/sitecms/backend/go-services/internal/users"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/middleware"
)

func internalError(c *gin.Context, what string, err error) {
	logger.Errorf("%s: %v", what, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": what + " failed"})
}

// NavigationHandler edits the site menu.
type NavigationHandler struct {
	svc *navigation.Service
}

func (h *NavigationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/navigation", h.List)
	rg.POST("/navigation", h.Create)
	rg.PUT("/navigation/reorder", h.Reorder)
	rg.PUT("/navigation/:id", h.Update)
	rg.DELETE("/navigation/:id", h.Delete)
}

func (h *NavigationHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, "list navigation", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NavigationHandler) Create(c *gin.Context) {
	var it navigation.Item
	if err := c.ShouldBindJSON(&it); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), it)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *NavigationHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var it navigation.Item
	if err := c.ShouldBindJSON(&it); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, it)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *NavigationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder accepts {"ids": [3, 1, 2]}.
func (h *NavigationHandler) Reorder(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.svc.Reorder(c.Request.Context(), req.IDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NavigationHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, navigation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, navigation.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, "navigation", err)
	}
}

// JobsHandler manages job openings.
type JobsHandler struct {
	svc *jobs.Service
}

func (h *JobsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.List)
	rg.POST("/jobs", h.Create)
	rg.GET("/jobs/:id", h.Get)
	rg.PUT("/jobs/:id", h.Update)
	rg.DELETE("/jobs/:id", h.Delete)
}

func (h *JobsHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, "list jobs", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *JobsHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	o, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *JobsHandler) Create(c *gin.Context) {
	var o jobs.Opening
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), o)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *JobsHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var o jobs.Opening
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, o)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *JobsHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobsHandler) fail(c *gin.Context, err error) {
	if ve, ok := jobs.IsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid job opening", "formErrors": ve.Fields})
		return
	}
	if errors.Is(err, jobs.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	internalError(c, "jobs", err)
}

// SettingsHandler reads and writes the footer/contact settings.
type SettingsHandler struct {
	svc *settings.Service
}

func (h *SettingsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Get)
	rg.PUT("/settings", h.Update)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		internalError(c, "load settings", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var next settings.Settings
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.svc.Update(c.Request.Context(), next)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidTheme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, "save settings", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// UsersHandler manages dashboard accounts. Writes need the admin role.
type UsersHandler struct {
	svc *users.Service
}

func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	adminOnly := rg.Group("", middleware.RequireRole(models.RoleAdmin))
	adminOnly.POST("/users", h.Create)
	adminOnly.DELETE("/users/:id", h.Delete)
}

func (h *UsersHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		internalError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Email, req.Name, req.Role, req.Password)
	switch {
	case errors.Is(err, users.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		internalError(c, "create user", err)
	default:
		c.JSON(http.StatusCreated, u)
	}
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if sub, _ := middleware.Claims(c)["sub"].(string); sub == id {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot delete your own account"})
		return
	}
	err := h.svc.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrLastAdmin):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		internalError(c, "delete user", err)
	default:
		c.Status(http.StatusNoContent)
	}
}

func readLimited(r io.Reader, max int64) ([]byte, bool, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, false, err
	}
	return b, int64(len(b)) <= max, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
