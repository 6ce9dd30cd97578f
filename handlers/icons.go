package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/service"
	"github.com/lumenworks/sitecms/backend/go-services/internal/icons"
)

// IconsHandler exposes the icon selector. Every import answers {"icon": value};
// with ?contentId= the value is also stored on that service item.
type IconsHandler struct {
	cfg     config.IconsConfig
	content *service.Service
	client  *http.Client
}

func (h *IconsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/icons", h.Search)
	rg.POST("/icons/select", h.Select)
	rg.POST("/icons/import/json", h.ImportJSON)
	rg.POST("/icons/import/url", h.ImportURL)
	rg.POST("/icons/import/file", h.ImportFile)
}

func (h *IconsHandler) selector(picked *string) *icons.Selector {
	return icons.NewSelector(icons.Options{
		OnSelectIcon: func(v string) { *picked = v },
		Client:       h.client,
		Timeout:      h.cfg.FetchTimeout,
		MaxBytes:     h.cfg.MaxBytes,
	})
}

func (h *IconsHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": icons.Search(c.Query("q"))})
}

func (h *IconsHandler) Select(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var picked string
	h.finish(c, &picked, h.selector(&picked).Select(req.Name))
}

func (h *IconsHandler) ImportJSON(c *gin.Context) {
	raw, ok, err := readLimited(c.Request.Body, h.maxBytes())
	if err != nil || !ok {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": icons.ErrTooLarge.Error()})
		return
	}
	var picked string
	_, err = h.selector(&picked).ImportJSON(raw)
	h.finish(c, &picked, err)
}

func (h *IconsHandler) ImportURL(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be http or https"})
		return
	}
	var picked string
	_, err := h.selector(&picked).ImportURL(c.Request.Context(), req.URL)
	h.finish(c, &picked, err)
}

// ImportFile expects a multipart "file" field.
func (h *IconsHandler) ImportFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fh.Size > h.maxBytes() {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": icons.ErrTooLarge.Error()})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	data, ok, err := readLimited(f, h.maxBytes())
	if err != nil || !ok {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": icons.ErrTooLarge.Error()})
		return
	}
	var picked string
	_, err = h.selector(&picked).ImportFile(fh.Filename, fh.Header.Get("Content-Type"), data)
	h.finish(c, &picked, err)
}

func (h *IconsHandler) maxBytes() int64 {
	if h.cfg.MaxBytes > 0 {
		return h.cfg.MaxBytes
	}
	return icons.DefaultMaxBytes
}

func (h *IconsHandler) finish(c *gin.Context, picked *string, err error) {
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, icons.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	contentID, err := queryInt64(c, "contentId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contentId"})
		return
	}
	if contentID == nil {
		c.JSON(http.StatusOK, gin.H{"icon": *picked})
		return
	}
	it, err := h.content.GetContent(c.Request.Context(), *contentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		internalError(c, "load content", err)
		return
	}
	if it.Type != content.TypeService {
		c.JSON(http.StatusBadRequest, gin.H{"error": "icons can only be set on services"})
		return
	}
	updated, err := h.content.UpdateContent(c.Request.Context(), it.ID, content.Partial{"icon": *picked})
	if err != nil {
		internalError(c, "save icon", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"icon": *picked, "item": updated})
}
