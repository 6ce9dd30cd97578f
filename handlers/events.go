package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
)

// EventsHandler streams storage events to the dashboard as Server-Sent Events.
type EventsHandler struct {
	bus       *events.Bus
	heartbeat time.Duration
}

func (h *EventsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/events", h.Stream)
}

// Stream subscribes for the lifetime of the request and unsubscribes when
// the client goes away. Slow clients drop events rather than block writers.
func (h *EventsHandler) Stream(c *gin.Context) {
	ch := make(chan events.Event, 32)
	unsub := h.bus.SubscribeAll(func(ev events.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	defer unsub()

	beat := h.heartbeat
	if beat <= 0 {
		beat = 25 * time.Second
	}
	ticker := time.NewTicker(beat)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-ch:
			c.SSEvent(string(ev.Name), ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
