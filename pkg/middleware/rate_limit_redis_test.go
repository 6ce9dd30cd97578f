package middleware

import (
	"net/http"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitMiddleware_Basic(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	r := gin.New()
	r.Use(RedisRateLimitMiddleware(client, "test", 0.1, 1, time.Minute))
	r.GET("/r", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// 0.1 rps over a 60s window plus a burst of 1 allows 7 hits
	for i := 0; i < 7; i++ {
		require.Equal(t, http.StatusOK, hit(r, "/r"), "request %d", i)
	}
	require.Equal(t, http.StatusTooManyRequests, hit(r, "/r"))

	keys := m.Keys()
	require.NotEmpty(t, keys)
	require.Contains(t, keys[0], "test:ip:")
}

func TestRedisRateLimitMiddleware_FallsBackWithoutClient(t *testing.T) {
	r := gin.New()
	r.Use(RedisRateLimitMiddleware(nil, "", 0.5, 1, time.Second))
	r.GET("/r", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, hit(r, "/r"))
	require.Equal(t, http.StatusTooManyRequests, hit(r, "/r"))
}
