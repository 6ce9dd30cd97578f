package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/repository"
	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/metrics"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrPendingMedia is returned when an item carries local uploads and no
	// uploader is configured to persist them.
	ErrPendingMedia = errors.New("pending media uploads cannot be stored")
)

// Uploader persists a pending binary and returns its reference URL.
type Uploader interface {
	Upload(ctx context.Context, u content.Upload) (string, error)
}

// Service is the storage service every admin and public flow reads from.
// Writes are synchronous; the matching event fires once after the write is
// committed to the repository.
type Service struct {
	repo     repository.Repository
	bus      *events.Bus
	uploader Uploader
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithUploader enables storing pending media during writes.
func WithUploader(u Uploader) Option { return func(s *Service) { s.uploader = u } }

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo repository.Repository, bus *events.Bus, opts ...Option) *Service {
	if bus == nil {
		bus = events.NewBus()
	}
	s := &Service{repo: repo, bus: bus, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(bus *events.Bus, opts ...Option) *Service {
	return NewService(repository.NewMemoryRepo(), bus, opts...)
}

// Bus exposes the event bus the service publishes on.
func (s *Service) Bus() *events.Bus { return s.bus }

// Subscribe registers h for the named event and returns its unsubscribe func.
func (s *Service) Subscribe(name events.Name, h events.Handler) events.Unsubscribe {
	return s.bus.Subscribe(name, h)
}

func (s *Service) GetAllContent(ctx context.Context) ([]content.Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetContentByType(ctx context.Context, t content.Type) ([]content.Item, error) {
	return s.Query(ctx, content.ListOptions{Type: t})
}

// Query serves the admin list screens.
func (s *Service) Query(ctx context.Context, opts content.ListOptions) ([]content.Item, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return opts.Apply(all), nil
}

func (s *Service) GetContent(ctx context.Context, id int64) (content.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return content.Item{}, mapErr(err)
	}
	return it, nil
}

// GetBySlug finds the first item of type t with the given slug.
func (s *Service) GetBySlug(ctx context.Context, t content.Type, slug string) (content.Item, error) {
	items, err := s.GetContentByType(ctx, t)
	if err != nil {
		return content.Item{}, err
	}
	for _, it := range items {
		if it.Slug == slug {
			return it, nil
		}
	}
	return content.Item{}, ErrNotFound
}

// AddContent assigns the id and stamps lastUpdated.
func (s *Service) AddContent(ctx context.Context, it content.Item) (content.Item, error) {
	it.ID = 0
	if err := s.prepare(ctx, &it); err != nil {
		return content.Item{}, err
	}
	created, err := s.repo.Create(ctx, it)
	if err != nil {
		return content.Item{}, fmt.Errorf("add content: %w", err)
	}
	metrics.ContentWrites.WithLabelValues("add", string(created.Type)).Inc()
	s.bus.Publish(events.Event{Name: events.ContentAdded, EntityID: created.ID, Payload: created})
	return created, nil
}

// UpdateContent merges a record-shaped partial into the stored item and
// re-stamps lastUpdated.
func (s *Service) UpdateContent(ctx context.Context, id int64, p content.Partial) (content.Item, error) {
	cur, err := s.repo.Get(ctx, id)
	if err != nil {
		return content.Item{}, mapErr(err)
	}
	merged, err := content.Merge(cur, p)
	if err != nil {
		return content.Item{}, err
	}
	return s.replace(ctx, merged)
}

// ReplaceContent stores a complete item under its existing id.
func (s *Service) ReplaceContent(ctx context.Context, it content.Item) (content.Item, error) {
	if _, err := s.repo.Get(ctx, it.ID); err != nil {
		return content.Item{}, mapErr(err)
	}
	return s.replace(ctx, it)
}

func (s *Service) replace(ctx context.Context, it content.Item) (content.Item, error) {
	if err := s.prepare(ctx, &it); err != nil {
		return content.Item{}, err
	}
	if err := s.repo.Replace(ctx, it); err != nil {
		return content.Item{}, mapErr(err)
	}
	metrics.ContentWrites.WithLabelValues("update", string(it.Type)).Inc()
	s.bus.Publish(events.Event{Name: events.ContentUpdated, EntityID: it.ID, Payload: it})
	return it, nil
}

// DeleteContent hard-deletes the item and reports whether it existed.
// Page sections placed on the deleted item are left in place with a
// dangling reference.
func (s *Service) DeleteContent(ctx context.Context, id int64) (bool, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if refs, err := s.References(ctx, id); err == nil && len(refs) > 0 {
		logger.Infof("content %d deleted; %d page section(s) now reference a missing item", id, len(refs))
	}
	metrics.ContentWrites.WithLabelValues("delete", string(it.Type)).Inc()
	s.bus.Publish(events.Event{Name: events.ContentDeleted, EntityID: id, Payload: it})
	return true, nil
}

// References lists page sections whose placement points at id.
func (s *Service) References(ctx context.Context, id int64) ([]content.Item, error) {
	sections, err := s.GetContentByType(ctx, content.TypePageSection)
	if err != nil {
		return nil, err
	}
	var out []content.Item
	for _, sec := range sections {
		p := sec.Placement
		if p == nil {
			continue
		}
		if (p.PageID != nil && *p.PageID == id) || (p.SectionID != nil && *p.SectionID == id) {
			out = append(out, sec)
		}
	}
	return out, nil
}

func (s *Service) prepare(ctx context.Context, it *content.Item) error {
	if err := it.CheckDetails(); err != nil {
		return err
	}
	it.Content = content.SanitizeHTML(it.Content)
	it.SEO.Keywords = content.DedupKeywords(it.SEO.Keywords)
	if it.Placement.Empty() {
		it.Placement = nil
	}
	var err error
	if it.Images, err = s.storePending(ctx, it.Images); err != nil {
		return err
	}
	if it.Documents, err = s.storePending(ctx, it.Documents); err != nil {
		return err
	}
	it.LastUpdated = s.now()
	return nil
}

func (s *Service) storePending(ctx context.Context, in []content.Media) ([]content.Media, error) {
	out := make([]content.Media, 0, len(in))
	for _, m := range in {
		if !m.Pending() {
			if m.URL != "" {
				out = append(out, m)
			}
			continue
		}
		if s.uploader == nil {
			return nil, ErrPendingMedia
		}
		url, err := s.uploader.Upload(ctx, *m.Upload)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", m.Upload.Filename, err)
		}
		out = append(out, content.Ref(url))
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
