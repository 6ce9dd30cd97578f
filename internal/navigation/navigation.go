// Package navigation manages the site menu. Entries are edited directly or
// derived from pages flagged to show in navigation.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// Item is one menu entry. ContentID is set for entries managed from a page.
type Item struct {
	ID        int64  `json:"id" bson:"id"`
	Label     string `json:"label" bson:"label"`
	Path      string `json:"path" bson:"path"`
	Order     int    `json:"order" bson:"order"`
	ContentID *int64 `json:"contentId,omitempty" bson:"contentId,omitempty"`
}

var ErrInvalid = errors.New("navigation item requires a label and a path starting with /")

func (it Item) validate() error {
	if strings.TrimSpace(it.Label) == "" || !strings.HasPrefix(it.Path, "/") {
		return ErrInvalid
	}
	return nil
}

type Service struct {
	repo Repository
	bus  *events.Bus

	// syncMu serialises page reconciliation so find-then-create runs once per page.
	syncMu sync.Mutex
}

func NewService(repo Repository, bus *events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns entries by order, then id.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order == items[j].Order {
			return items[i].ID < items[j].ID
		}
		return items[i].Order < items[j].Order
	})
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	return s.repo.Get(ctx, id)
}

// Create appends it to the end of the menu unless an order is given.
func (s *Service) Create(ctx context.Context, it Item) (Item, error) {
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	if it.Order == 0 {
		n, err := s.nextOrder(ctx)
		if err != nil {
			return Item{}, err
		}
		it.Order = n
	}
	created, err := s.repo.Create(ctx, it)
	if err != nil {
		return Item{}, err
	}
	s.publish(created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, it Item) (Item, error) {
	it.ID = id
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	if err := s.repo.Replace(ctx, it); err != nil {
		return Item{}, err
	}
	s.publish(id)
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(id)
	return nil
}

// Reorder assigns positions following ids. Entries not listed keep their
// relative order after the listed ones.
func (s *Service) Reorder(ctx context.Context, ids []int64) ([]Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	var ordered []Item
	seen := map[int64]bool{}
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("reorder: %w: %d", ErrNotFound, id)
		}
		if !seen[id] {
			seen[id] = true
			ordered = append(ordered, it)
		}
	}
	for _, it := range items {
		if !seen[it.ID] {
			ordered = append(ordered, it)
		}
	}
	for i := range ordered {
		ordered[i].Order = i + 1
		if err := s.repo.Replace(ctx, ordered[i]); err != nil {
			return nil, err
		}
	}
	s.publish(0)
	return ordered, nil
}

// Sync mirrors page content into the menu: a page with showInNavigation has
// an entry at /<slug>, anything else loses it. It reconciles existing pages
// first, then follows content events until the returned func is called.
func (s *Service) Sync(ctx context.Context, pages []content.Item) (events.Unsubscribe, error) {
	for _, p := range pages {
		if err := s.reconcile(ctx, p, false); err != nil {
			return nil, err
		}
	}
	apply := func(ev events.Event) {
		it, ok := ev.Payload.(content.Item)
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.reconcile(ctx, it, ev.Name == events.ContentDeleted); err != nil {
			logger.Warnf("navigation: sync content %d: %v", it.ID, err)
		}
	}
	unsubs := []events.Unsubscribe{
		s.bus.Subscribe(events.ContentAdded, apply),
		s.bus.Subscribe(events.ContentUpdated, apply),
		s.bus.Subscribe(events.ContentDeleted, apply),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}, nil
}

func (s *Service) reconcile(ctx context.Context, it content.Item, deleted bool) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	if deleted {
		return s.removeFor(ctx, it.ID)
	}
	return s.syncPage(ctx, it)
}

func (s *Service) syncPage(ctx context.Context, p content.Item) error {
	if p.Type != content.TypePage {
		return nil
	}
	if !p.ShowInNavigation || !p.Published || p.Slug == "" {
		return s.removeFor(ctx, p.ID)
	}
	existing, err := s.findFor(ctx, p.ID)
	if err != nil {
		return err
	}
	want := Item{Label: p.Title, Path: "/" + p.Slug}
	if existing == nil {
		id := p.ID
		want.ContentID = &id
		_, err := s.Create(ctx, want)
		return err
	}
	if existing.Label == want.Label && existing.Path == want.Path {
		return nil
	}
	existing.Label, existing.Path = want.Label, want.Path
	_, err = s.Update(ctx, existing.ID, *existing)
	return err
}

func (s *Service) removeFor(ctx context.Context, contentID int64) error {
	existing, err := s.findFor(ctx, contentID)
	if err != nil || existing == nil {
		return err
	}
	return s.Delete(ctx, existing.ID)
}

func (s *Service) findFor(ctx context.Context, contentID int64) (*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ContentID != nil && *it.ContentID == contentID {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (s *Service) nextOrder(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, it := range items {
		if it.Order > max {
			max = it.Order
		}
	}
	return max + 1, nil
}

func (s *Service) publish(id int64) {
	s.bus.Publish(events.Event{Name: events.NavigationUpdated, EntityID: id})
}
