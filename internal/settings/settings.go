// Package settings holds the single site-wide settings document: footer,
// contact details and theme.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
)

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Footer struct {
	CompanyName string       `json:"companyName"`
	Tagline     string       `json:"tagline,omitempty"`
	Copyright   string       `json:"copyright,omitempty"`
	Links       []Link       `json:"links,omitempty"`
	Social      []SocialLink `json:"social,omitempty"`
}

type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	MapURL  string `json:"mapUrl,omitempty"`
	Hours   string `json:"hours,omitempty"`
}

// Theme is the site colour scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type Settings struct {
	Footer  Footer  `json:"footer"`
	Contact Contact `json:"contact"`
	Theme   Theme   `json:"theme"`
}

var ErrInvalidTheme = errors.New("theme must be light, dark or system")

// Defaults is what a fresh install serves.
func Defaults() Settings {
	return Settings{
		Footer: Footer{CompanyName: "Your Company", Copyright: "All rights reserved."},
		Theme:  ThemeSystem,
	}
}

// Repository loads and stores the settings document. Load returns
// ok=false when nothing was stored yet.
type Repository interface {
	Load(ctx context.Context) (Settings, bool, error)
	Save(ctx context.Context, s Settings) error
}

type MemoryRepo struct {
	mu  sync.RWMutex
	cur *Settings
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Load(ctx context.Context) (Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cur == nil {
		return Settings{}, false, nil
	}
	return clone(*r.cur), true, nil
}

func (r *MemoryRepo) Save(ctx context.Context, s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := clone(s)
	r.cur = &c
	return nil
}

// RedisRepo keeps the document as JSON under a single key.
type RedisRepo struct {
	client *redis.Client
	key    string
}

func NewRedisRepo(client *redis.Client, key string) *RedisRepo {
	if key == "" {
		key = "settings:site"
	}
	return &RedisRepo{client: client, key: key}
}

func (r *RedisRepo) Load(ctx context.Context) (Settings, bool, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Settings{}, false, nil
		}
		return Settings{}, false, err
	}
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

func (r *RedisRepo) Save(ctx context.Context, s Settings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, 0).Err()
}

type Service struct {
	repo Repository
	bus  *events.Bus
}

func NewService(repo Repository, bus *events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Get returns the stored settings, or the defaults.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	cur, ok, err := s.repo.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return cur, nil
}

// Update replaces the settings document.
func (s *Service) Update(ctx context.Context, next Settings) (Settings, error) {
	next.Theme = Theme(strings.ToLower(strings.TrimSpace(string(next.Theme))))
	switch next.Theme {
	case "":
		next.Theme = ThemeSystem
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return Settings{}, ErrInvalidTheme
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return Settings{}, err
	}
	s.bus.Publish(events.Event{Name: events.SettingsUpdated, Payload: next})
	return next, nil
}

func clone(s Settings) Settings {
	s.Footer.Links = append([]Link(nil), s.Footer.Links...)
	s.Footer.Social = append([]SocialLink(nil), s.Footer.Social...)
	return s
}
