package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/app"
	"github.com/lumenworks/sitecms/backend/go-services/internal/icons"
	"github.com/lumenworks/sitecms/backend/go-services/internal/media"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/middleware"
)

// MemoryMediaPrefix is where in-process media is served from.
const MemoryMediaPrefix = "/media"

// RegisterRoutes mounts the auth, admin and public APIs for a.
func RegisterRoutes(r *gin.Engine, a *app.App) {
	cfg := a.Config

	var public, login gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && a.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			public = middleware.RedisRateLimitMiddleware(a.Redis, "rl:site", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
			login = middleware.RedisRateLimitMiddleware(a.Redis, "rl:login", 0.2, 5, time.Minute)
		} else {
			public = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			login = middleware.RateLimitMiddleware(0.2, 5)
		}
	}

	auth := NewAuthHandler(cfg, a.Users, a.Sessions)
	auth.Register(r.Group(""), login)

	admin := r.Group("/api/admin", middleware.AuthMiddleware(auth.Verifier()))
	NewContentHandler(a.Content).Register(admin)
	(&NavigationHandler{svc: a.Navigation}).Register(admin)
	(&JobsHandler{svc: a.Jobs}).Register(admin)
	(&SettingsHandler{svc: a.Settings}).Register(admin)
	(&UsersHandler{svc: a.Users}).Register(admin)
	(&IconsHandler{cfg: cfg.Icons, content: a.Content, client: icons.PublicClient()}).Register(admin)
	(&MediaHandler{uploader: media.NewUploader(a.Media)}).Register(admin)
	(&EventsHandler{bus: a.Bus}).Register(admin)

	site := r.Group("/api/site")
	if public != nil {
		site.Use(public)
	}
	NewSiteHandler(a.Site).Register(site)

	if a.Memory != nil && strings.HasPrefix(a.Memory.BaseURL, MemoryMediaPrefix) {
		ServeMemoryMedia(r, MemoryMediaPrefix, a.Memory)
	}
}
