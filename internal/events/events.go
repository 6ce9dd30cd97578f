// Package events is the in-process observer used by the storage services to
// notify admin screens and derived views about committed writes.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumenworks/sitecms/backend/go-services/pkg/metrics"
)

// Name identifies an event kind.
type Name string

const (
	ContentAdded      Name = "content-added"
	ContentUpdated    Name = "content-updated"
	ContentDeleted    Name = "content-deleted"
	NavigationUpdated Name = "navigation-updated"
	JobUpdated        Name = "job-updated"
	SettingsUpdated   Name = "settings-updated"
)

// Names lists every event kind.
func Names() []Name {
	return []Name{ContentAdded, ContentUpdated, ContentDeleted, NavigationUpdated, JobUpdated, SettingsUpdated}
}

// Event is the envelope delivered to handlers.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Name     Name      `json:"name"`
	EntityID int64     `json:"entityId,omitempty"`
	At       time.Time `json:"at"`
	Payload  any       `json:"payload,omitempty"`
}

// Handler receives events synchronously on the publishing goroutine.
type Handler func(Event)

// Unsubscribe removes a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

type subscription struct {
	id      uint64
	name    Name // empty for wildcard
	handler Handler
}

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewBus() *Bus { return &Bus{} }

// Subscribe registers h for events named name.
func (b *Bus) Subscribe(name Name, h Handler) Unsubscribe {
	return b.add(name, h)
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) Unsubscribe {
	return b.add("", h)
}

func (b *Bus) add(name Name, h Handler) Unsubscribe {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, name: name, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers ev once to every matching subscriber. ID and At are filled
// in when empty. The subscriber list is snapshotted first so handlers may
// subscribe or unsubscribe while being called.
func (b *Bus) Publish(ev Event) Event {
	if b == nil {
		return ev
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b.mu.RLock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.RUnlock()

	for _, s := range snapshot {
		if s.name == "" || s.name == ev.Name {
			s.handler(ev)
		}
	}
	metrics.EventsPublished.WithLabelValues(string(ev.Name)).Inc()
	return ev
}
