package sessions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository implements Repository using Redis as the backing store.
// Revocations are stored as JSON under key "<prefix><token>" with
// TTL = expiresAt - now, so Redis forgets them when the token expires.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-based revocation store. Prefix may be empty.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "blacklist:access:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(token string) string {
	return r.prefix + token
}

func (r *RedisRepository) Revoke(ctx context.Context, rev *Revocation) error {
	b, err := json.Marshal(rev)
	if err != nil {
		return err
	}
	ttl := time.Until(rev.ExpiresAt)
	if ttl <= 0 {
		// ensure a minimal TTL so Redis won't keep expired entries
		ttl = time.Second
	}
	return r.client.Set(ctx, r.key(rev.Token), b, ttl).Err()
}

func (r *RedisRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
