package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
)

// MemoryRepo is an in-memory repository used when no database is configured
// and in unit tests. Items are cloned on the way in and out.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	store  map[int64]content.Item
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[int64]content.Item)}
}

func (m *MemoryRepo) Create(_ context.Context, it content.Item) (content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it.ID = m.nextID
	m.store[it.ID] = it.Clone()
	return it, nil
}

func (m *MemoryRepo) Get(_ context.Context, id int64) (content.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if it, ok := m.store[id]; ok {
		return it.Clone(), nil
	}
	return content.Item{}, ErrNotFound
}

// List returns items ordered by id.
func (m *MemoryRepo) List(_ context.Context) ([]content.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]content.Item, 0, len(m.store))
	for _, it := range m.store {
		out = append(out, it.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepo) Replace(_ context.Context, it content.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[it.ID]; !ok {
		return ErrNotFound
	}
	m.store[it.ID] = it.Clone()
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
