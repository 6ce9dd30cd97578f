package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// mirrorTimeout bounds a single PUBLISH.
const mirrorTimeout = 2 * time.Second

// RedisMirror republishes bus events on a Redis channel so other processes
// (a second admin instance, a cache warmer) can react to writes.
type RedisMirror struct {
	client  *redis.Client
	channel string
}

// NewRedisMirror returns nil when client is nil or channel is empty.
func NewRedisMirror(client *redis.Client, channel string) *RedisMirror {
	if client == nil || channel == "" {
		return nil
	}
	return &RedisMirror{client: client, channel: channel}
}

// Publish sends ev as JSON. A nil mirror is a no-op.
func (m *RedisMirror) Publish(ctx context.Context, ev Event) error {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := m.client.Publish(ctx, m.channel, b).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", m.channel, err)
	}
	return nil
}

// Attach subscribes the mirror to every event on bus.
func (m *RedisMirror) Attach(bus *Bus) Unsubscribe {
	if m == nil {
		return func() {}
	}
	return bus.SubscribeAll(func(ev Event) {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := m.Publish(ctx, ev); err != nil {
			logger.Warnf("event mirror: %s (%d): %v", ev.Name, ev.EntityID, err)
		}
	})
}
