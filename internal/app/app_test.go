package app

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/users"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "app-test-secret"
	cfg.Auth.AdminEmail = "admin@example.com"
	cfg.Auth.AdminPassword = "admin123"
	return cfg
}

func TestNewInMemory(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(), WithUserOptions(users.WithHashCost(bcrypt.MinCost)))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, BackendMemory, a.Backends["content"])
	assert.Equal(t, BackendMemory, a.Backends["media"])
	assert.Empty(t, a.Ready(ctx))

	_, err = a.Users.Authenticate(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	// navigation follows pages through the bus
	_, err = a.Content.AddContent(ctx, content.Item{Type: content.TypePage, Title: "About", Slug: "about", Published: true, ShowInNavigation: true})
	require.NoError(t, err)
	nav, err := a.Navigation.List(ctx)
	require.NoError(t, err)
	require.Len(t, nav, 1)
	assert.Equal(t, "/about", nav[0].Path)
}

func TestNewWithRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	cfg := testConfig()
	cfg.Redis.Host, cfg.Redis.Port = m.Host(), m.Port()
	cfg.Redis.UseForContent = true
	cfg.Events.RedisChannel = "sitecms:events"

	ctx := context.Background()
	a, err := New(ctx, cfg, WithUserOptions(users.WithHashCost(bcrypt.MinCost)))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, BackendRedis, a.Backends["content"])
	assert.Equal(t, BackendRedis, a.Backends["settings"])
	assert.Equal(t, map[string]bool{"redis": true}, a.Ready(ctx))

	_, err = a.Content.AddContent(ctx, content.Item{Type: content.TypeFAQ, Title: "Why?", Details: content.FAQDetails{Answer: "Because"}})
	require.NoError(t, err)
	got, err := a.Content.GetContentByType(ctx, content.TypeFAQ)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestNewFallsBackWhenRedisIsDown(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Host, cfg.Redis.Port = "127.0.0.1", "1"

	a, err := New(context.Background(), cfg, WithUserOptions(users.WithHashCost(bcrypt.MinCost)))
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Redis)
	assert.Equal(t, BackendMemory, a.Backends["sessions"])
}
