package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/service"
	"github.com/lumenworks/sitecms/backend/go-services/internal/form"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// ContentHandler serves the admin content API. Creates and replaces go
// through the content form so the dashboard and the API share one set of
// rules.
type ContentHandler struct {
	svc *service.Service
}

func NewContentHandler(svc *service.Service) *ContentHandler { return &ContentHandler{svc: svc} }

func (h *ContentHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/content/types", h.Types)
	rg.GET("/content", h.List)
	rg.POST("/content", h.Create)
	rg.GET("/content/:id", h.Get)
	rg.PUT("/content/:id", h.Replace)
	rg.PATCH("/content/:id", h.Patch)
	rg.DELETE("/content/:id", h.Delete)
	rg.GET("/content/:id/references", h.References)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// Types lists the content types with their labels and form tabs.
func (h *ContentHandler) Types(c *gin.Context) {
	out := make([]gin.H, 0, len(content.Types()))
	for _, t := range content.Types() {
		tabs := form.New(form.Options{InitialValues: &content.Item{Type: t}}).Tabs()
		out = append(out, gin.H{"type": t, "label": t.Label(), "requiresSlug": t.RequiresSlug(), "tabs": tabs})
	}
	c.JSON(http.StatusOK, out)
}

// List supports ?type=, ?published=, ?q= and ?sort= ("title", "-lastUpdated").
func (h *ContentHandler) List(c *gin.Context) {
	opts := content.ListOptions{Search: c.Query("q")}
	if t := c.Query("type"); t != "" {
		pt, err := content.ParseType(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Type = pt
	}
	if p := c.Query("published"); p != "" {
		b, err := strconv.ParseBool(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "published must be true or false"})
			return
		}
		opts.Published = &b
	}
	opts.Sort, opts.Desc = content.ParseSort(c.Query("sort"))
	items, err := h.svc.Query(c.Request.Context(), opts)
	if err != nil {
		logger.Errorf("list content: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list content"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	it, err := h.svc.GetContent(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *ContentHandler) Create(c *gin.Context) {
	h.submit(c, nil)
}

func (h *ContentHandler) Replace(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	existing, err := h.svc.GetContent(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.submit(c, &existing)
}

// submit runs a Submission through a fresh form. Blocked submissions answer
// 422 with the field errors and keep nothing.
func (h *ContentHandler) submit(c *gin.Context, existing *content.Item) {
	var sub form.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec := &form.Recorder{}
	opts := form.Options{Notifier: rec, OnSave: h.svc.AddContent}
	if existing != nil {
		opts.InitialValues = existing
		opts.IsEditing = true
		opts.OnSave = h.svc.ReplaceContent
	}
	f := form.New(opts)
	if err := sub.Apply(f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := f.FormErrors(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid input", "formErrors": errs})
		return
	}
	saved, err := f.Submit(c.Request.Context())
	switch {
	case errors.Is(err, form.ErrBlocked):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         err.Error(),
			"formErrors":    f.FormErrors(),
			"warnings":      f.Warnings(),
			"notifications": rec.Toasts(),
		})
		return
	case err != nil:
		h.fail(c, err)
		return
	}
	status := http.StatusCreated
	if existing != nil {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"item": saved, "warnings": f.Warnings(), "notifications": rec.Toasts()})
}

// Patch merges a record-shaped body into the stored item, for toggles such
// as {"published": false}. Advisory rules are skipped; the blocking ones
// still apply to the merged result.
func (h *ContentHandler) Patch(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var p content.Partial
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cur, err := h.svc.GetContent(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	merged, err := content.Merge(cur, p)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res := content.Validate(merged); res.Blocked() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid input", "formErrors": res.Errors})
		return
	}
	it, err := h.svc.ReplaceContent(c.Request.Context(), merged)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Delete removes the item. Sections placed on it are left as they are and
// listed in the response.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	refs, err := h.svc.References(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	deleted, err := h.svc.DeleteContent(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	dangling := make([]int64, 0, len(refs))
	for _, r := range refs {
		dangling = append(dangling, r.ID)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id, "danglingReferences": dangling})
}

func (h *ContentHandler) References(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	refs, err := h.svc.References(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if refs == nil {
		refs = []content.Item{}
	}
	c.JSON(http.StatusOK, refs)
}

func (h *ContentHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, content.ErrInvalidPartial), errors.Is(err, content.ErrDetailsMismatch), errors.Is(err, service.ErrPendingMedia):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Errorf("content: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "content operation failed"})
	}
}
