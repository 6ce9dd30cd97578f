package jobs

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

var ErrNotFound = errors.New("job opening not found")

type Repository interface {
	Create(ctx context.Context, o Opening) (Opening, error)
	Get(ctx context.Context, id int64) (Opening, error)
	List(ctx context.Context) ([]Opening, error)
	Replace(ctx context.Context, o Opening) error
	Delete(ctx context.Context, id int64) error
}

type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Opening
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[int64]Opening)}
}

func (r *MemoryRepo) Create(ctx context.Context, o Opening) (Opening, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	o.ID = r.nextID
	r.items[o.ID] = clone(o)
	return o, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Opening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return Opening{}, ErrNotFound
	}
	return clone(o), nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Opening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Opening, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, clone(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Replace(ctx context.Context, o Opening) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[o.ID]; !ok {
		return ErrNotFound
	}
	r.items[o.ID] = clone(o)
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

func clone(o Opening) Opening {
	o.Responsibilities = append([]string(nil), o.Responsibilities...)
	o.Requirements = append([]string(nil), o.Requirements...)
	o.Benefits = append([]string(nil), o.Benefits...)
	if o.Salary != nil {
		s := *o.Salary
		o.Salary = &s
	}
	return o
}

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	if err := database.EnsureIDIndex(ctx, col); err != nil {
		logger.Warnf("jobs: ensure id index: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, o Opening) (Opening, error) {
	id, err := database.NextSequence(ctx, m.col.Database(), m.col.Name())
	if err != nil {
		return Opening{}, err
	}
	o.ID = id
	if _, err := m.col.InsertOne(ctx, o); err != nil {
		return Opening{}, err
	}
	return o, nil
}

func (m *MongoRepo) Get(ctx context.Context, id int64) (Opening, error) {
	var o Opening
	if err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Opening{}, ErrNotFound
		}
		return Opening{}, err
	}
	return o, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]Opening, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []Opening{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Replace(ctx context.Context, o Opening) error {
	res, err := m.col.ReplaceOne(ctx, bson.M{"id": o.ID}, o)
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
