package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/sessions"
	"github.com/lumenworks/sitecms/backend/go-services/internal/tokens"
	"github.com/lumenworks/sitecms/backend/go-services/internal/users"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/middleware"
)

// LoginRequest is the admin dashboard credential form.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	verifier    *tokens.Verifier
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, verifier: tokens.NewVerifier(cfg, s)}
}

// Verifier returns the access token verifier guarding the admin routes.
func (h *AuthHandler) Verifier() *tokens.Verifier { return h.verifier }

func (h *AuthHandler) ttl() time.Duration {
	if h.cfg.Auth.AccessTokenTTL > 0 {
		return h.cfg.Auth.AccessTokenTTL
	}
	return time.Hour
}

// Register routes under /auth. limit guards the login route when non-nil.
func (h *AuthHandler) Register(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	a := rg.Group("/auth")
	if limit != nil {
		a.POST("/login", limit, h.Login)
	} else {
		a.POST("/login", h.Login)
	}
	authed := a.Group("", middleware.AuthMiddleware(h.verifier))
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}

// Login exchanges email and password for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("login lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}
	ttl := h.ttl()
	access, err := tokens.GenerateAccessToken(h.cfg, u, ttl)
	if err != nil {
		logger.Errorf("sign access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(ttl.Seconds()), "user": u})
}

// Logout revokes the bearer token until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	at := c.GetString(middleware.TokenKey)
	exp, err := h.verifier.ExpiresAt(at)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	sub, _ := middleware.Claims(c)["sub"].(string)
	if err := h.sessionsSvc.Revoke(c.Request.Context(), at, sub, exp); err != nil {
		logger.Errorf("revoke access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	sub, _ := middleware.Claims(c)["sub"].(string)
	u, err := h.usersSvc.Get(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}
