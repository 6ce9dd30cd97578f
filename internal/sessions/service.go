package sessions

import (
	"context"
	"time"
)

// Service wraps repository operations with business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Revoke logs a token out until expiresAt. Tokens that already expired are
// ignored since they are rejected anyway.
func (s *Service) Revoke(ctx context.Context, token, sub string, expiresAt time.Time) error {
	now := time.Now().UTC()
	if token == "" || !expiresAt.After(now) {
		return nil
	}
	return s.repo.Revoke(ctx, &Revocation{Token: token, Sub: sub, RevokedAt: now, ExpiresAt: expiresAt})
}

// IsRevoked reports whether token was logged out.
func (s *Service) IsRevoked(ctx context.Context, token string) (bool, error) {
	if s == nil || s.repo == nil {
		return false, nil
	}
	return s.repo.IsRevoked(ctx, token)
}
