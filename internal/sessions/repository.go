package sessions

import (
	"context"
	"sync"
	"time"
)

// Repository stores revoked access tokens.
type Repository interface {
	Revoke(ctx context.Context, r *Revocation) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRepository keeps revocations in process and drops them once the
// token would have expired.
type MemoryRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *MemoryRepository) Revoke(ctx context.Context, rev *Revocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	r.revoked[rev.Token] = rev.ExpiresAt
	return nil
}

func (r *MemoryRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[token]
	if !ok {
		return false, nil
	}
	if r.now().After(exp) {
		delete(r.revoked, token)
		return false, nil
	}
	return true, nil
}

func (r *MemoryRepository) prune() {
	now := r.now()
	for tok, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, tok)
		}
	}
}
