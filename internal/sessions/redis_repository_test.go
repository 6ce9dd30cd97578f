package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_RevokeAndCheck(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:revoked:")

	ctx := context.Background()
	rev := &Revocation{Token: "access-token-1", Sub: "sub-1", ExpiresAt: time.Now().UTC().Add(5 * time.Second)}
	require.NoError(t, repo.Revoke(ctx, rev))
	require.True(t, m.Exists("test:revoked:access-token-1"))

	ok, err := repo.IsRevoked(ctx, "access-token-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.IsRevoked(ctx, "other")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "")

	ctx := context.Background()
	require.NoError(t, repo.Revoke(ctx, &Revocation{Token: "t2", ExpiresAt: time.Now().UTC().Add(2 * time.Second)}))
	require.True(t, m.Exists("blacklist:access:t2"))

	// advance miniredis clock past TTL
	m.FastForward(3 * time.Second)

	ok, err := repo.IsRevoked(ctx, "t2")
	require.NoError(t, err)
	require.False(t, ok)
}
