package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/media"
)

// MaxUploadBytes bounds a single media upload.
const MaxUploadBytes = 20 << 20

// MediaHandler stores files picked in the form and returns reference URLs
// the client then submits with the content item.
type MediaHandler struct {
	uploader *media.Uploader
}

func (h *MediaHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/media", h.Upload)
}

// Upload expects a multipart "file" field.
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fh.Size > MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	data, ok, err := readLimited(f, MaxUploadBytes)
	if err != nil || !ok {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
		return
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	url, err := h.uploader.Upload(c.Request.Context(), content.Upload{Filename: fh.Filename, ContentType: ct, Data: data})
	if err != nil {
		internalError(c, "store media", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url, "contentType": ct, "size": len(data)})
}

// ServeMemoryMedia serves objects held by a MemoryStore under prefix.
func ServeMemoryMedia(r *gin.Engine, prefix string, store *media.MemoryStore) {
	r.GET(prefix+"/*key", func(c *gin.Context) {
		obj, ok := store.Get(strings.TrimPrefix(c.Param("key"), "/"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		ct := servedType(obj.Data)
		c.Header("X-Content-Type-Options", "nosniff")
		if ct == "application/octet-stream" {
			c.Header("Content-Disposition", "attachment")
		}
		c.Data(http.StatusOK, ct, obj.Data)
	})
}

// servedType ignores the type declared at upload. Only sniffed raster
// images and PDFs render inline; everything else is a download.
func servedType(data []byte) string {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") || ct == "application/pdf" {
		return ct
	}
	return "application/octet-stream"
}
