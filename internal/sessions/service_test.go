package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRevokeAndCheck(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.Revoke(ctx, "tok-1", "user-1", time.Now().Add(time.Minute)))
	ok, err := svc.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.IsRevoked(ctx, "tok-2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRevokeIgnoresExpiredTokens(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Revoke(ctx, "old", "user-1", time.Now().Add(-time.Minute)))
	ok, err := svc.IsRevoked(ctx, "old")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, svc.Revoke(ctx, "", "user-1", time.Now().Add(time.Minute)))
}

func TestMemoryRepository_ForgetsAfterExpiry(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, &Revocation{Token: "t", ExpiresAt: now.Add(time.Second)}))
	ok, _ := repo.IsRevoked(ctx, "t")
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = repo.IsRevoked(ctx, "t")
	require.False(t, ok)
}

func TestNilService(t *testing.T) {
	var svc *Service
	ok, err := svc.IsRevoked(context.Background(), "x")
	require.NoError(t, err)
	require.False(t, ok)
}
