// Package site is the read model behind the public pages: only published
// content is visible.
package site

import (
	"context"
	"errors"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/service"
	"github.com/lumenworks/sitecms/backend/go-services/internal/jobs"
	"github.com/lumenworks/sitecms/backend/go-services/internal/navigation"
	"github.com/lumenworks/sitecms/backend/go-services/internal/settings"
)

var ErrNotFound = errors.New("not found")

// Page is a page together with its composed sections.
type Page struct {
	Page     content.Item   `json:"page"`
	Sections []content.Item `json:"sections"`
}

type Service struct {
	content  *service.Service
	nav      *navigation.Service
	jobs     *jobs.Service
	settings *settings.Service
}

func NewService(c *service.Service, nav *navigation.Service, j *jobs.Service, st *settings.Service) *Service {
	return &Service{content: c, nav: nav, jobs: j, settings: st}
}

func (s *Service) published(ctx context.Context, t content.Type) ([]content.Item, error) {
	yes := true
	return s.content.Query(ctx, content.ListOptions{Type: t, Published: &yes})
}

// List returns the published items of type t.
func (s *Service) List(ctx context.Context, t content.Type) ([]content.Item, error) {
	if !t.Valid() {
		return nil, ErrNotFound
	}
	return s.published(ctx, t)
}

func (s *Service) bySlug(ctx context.Context, t content.Type, slug string) (content.Item, error) {
	it, err := s.content.GetBySlug(ctx, t, slug)
	if errors.Is(err, service.ErrNotFound) || (err == nil && !it.Published) {
		return content.Item{}, ErrNotFound
	}
	return it, err
}

// Page returns the published page with the given slug and its sections.
func (s *Service) Page(ctx context.Context, slug string) (Page, error) {
	p, err := s.bySlug(ctx, content.TypePage, slug)
	if err != nil {
		return Page{}, err
	}
	sections, err := s.published(ctx, content.TypePageSection)
	if err != nil {
		return Page{}, err
	}
	return Page{Page: p, Sections: Compose(p, sections)}, nil
}

// BlogPost returns the published post with the given slug.
func (s *Service) BlogPost(ctx context.Context, slug string) (content.Item, error) {
	return s.bySlug(ctx, content.TypeBlogPost, slug)
}

func (s *Service) Navigation(ctx context.Context) ([]navigation.Item, error) {
	return s.nav.List(ctx)
}

func (s *Service) Jobs(ctx context.Context) ([]jobs.Opening, error) {
	return s.jobs.Published(ctx)
}

func (s *Service) Settings(ctx context.Context) (settings.Settings, error) {
	return s.settings.Get(ctx)
}
