package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/site"
)

// SiteHandler is the unauthenticated read API behind the public pages.
type SiteHandler struct {
	svc *site.Service
}

func NewSiteHandler(svc *site.Service) *SiteHandler { return &SiteHandler{svc: svc} }

func (h *SiteHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/content/:type", h.List)
	rg.GET("/pages/:slug", h.Page)
	rg.GET("/blog/:slug", h.BlogPost)
	rg.GET("/navigation", h.Navigation)
	rg.GET("/jobs", h.Jobs)
	rg.GET("/settings", h.Settings)
}

func (h *SiteHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), content.Type(c.Param("type")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SiteHandler) Page(c *gin.Context) {
	p, err := h.svc.Page(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *SiteHandler) BlogPost(c *gin.Context) {
	it, err := h.svc.BlogPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *SiteHandler) Navigation(c *gin.Context) {
	items, err := h.svc.Navigation(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SiteHandler) Jobs(c *gin.Context) {
	list, err := h.svc.Jobs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SiteHandler) Settings(c *gin.Context) {
	s, err := h.svc.Settings(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SiteHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, site.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	internalError(c, "site", err)
}
