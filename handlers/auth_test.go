package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/sessions"
	"github.com/lumenworks/sitecms/backend/go-services/internal/users"
)

func newAuthFixture(t *testing.T, repo sessions.Repository) (*gin.Engine, *config.Config) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "auth-test-secret-32-bytes-xxxxxx"
	cfg.Auth.AccessTokenTTL = 10 * time.Minute

	uSvc := users.NewService(users.NewMemoryUserRepository(), users.WithHashCost(bcrypt.MinCost))
	_, err := uSvc.EnsureAdmin(context.Background(), "admin@example.com", "admin123", "Admin")
	require.NoError(t, err)

	h := NewAuthHandler(cfg, uSvc, sessions.NewService(repo))
	r := gin.New()
	h.Register(r.Group(""), nil)
	return r, cfg
}

func do(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(r, http.MethodPost, "/auth/login", `{"email":"Admin@Example.com","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotZero(t, got["expiresIn"])
	user := got["user"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
	return got["accessToken"].(string)
}

func TestLoginAndMe(t *testing.T) {
	r, _ := newAuthFixture(t, sessions.NewMemoryRepository())
	at := login(t, r)

	w := do(r, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"admin123"}`, "")
	assert.Contains(t, w.Body.String(), `"expiresIn":600`)

	w = do(r, http.MethodGet, "/auth/me", "", at)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/auth/me", "", "").Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newAuthFixture(t, sessions.NewMemoryRepository())

	w := do(r, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(r, http.MethodPost, "/auth/login", `{"email":"admin@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesToken_Redis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	r, _ := newAuthFixture(t, sessions.NewRedisRepository(client, ""))
	at := login(t, r)

	w := do(r, http.MethodPost, "/auth/logout", "", at)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	keys := m.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "blacklist:access:"))
	assert.Greater(t, m.TTL(keys[0]), time.Duration(0))

	// the same token is refused from now on
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/auth/me", "", at).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/auth/logout", "", at).Code)

	// a fresh login still works
	fresh := login(t, r)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/auth/me", "", fresh).Code)
}

// Ensure CORS headers are present for browser-origin requests
func TestLogin_CORSHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:3000"))
	RegisterHealth(r, nil)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
