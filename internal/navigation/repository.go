package navigation

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumenworks/sitecms/backend/go-services/internal/database"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

var ErrNotFound = errors.New("navigation item not found")

// Repository persists navigation items.
type Repository interface {
	Create(ctx context.Context, it Item) (Item, error)
	Get(ctx context.Context, id int64) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Replace(ctx context.Context, it Item) error
	Delete(ctx context.Context, id int64) error
}

type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Item
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[int64]Item)}
}

func (r *MemoryRepo) Create(ctx context.Context, it Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	it.ID = r.nextID
	r.items[it.ID] = it
	return it, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Replace(ctx context.Context, it Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	r.items[it.ID] = it
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// MongoRepo stores navigation items in their own collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	if err := database.EnsureIDIndex(ctx, col); err != nil {
		logger.Warnf("navigation: ensure id index: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, it Item) (Item, error) {
	id, err := database.NextSequence(ctx, m.col.Database(), m.col.Name())
	if err != nil {
		return Item{}, err
	}
	it.ID = id
	if _, err := m.col.InsertOne(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (m *MongoRepo) Get(ctx context.Context, id int64) (Item, error) {
	var it Item
	if err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]Item, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []Item{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Replace(ctx context.Context, it Item) error {
	res, err := m.col.ReplaceOne(ctx, bson.M{"id": it.ID}, it)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id int64) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
