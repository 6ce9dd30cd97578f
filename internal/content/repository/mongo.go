package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/database"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// MongoRepo stores content records in a collection keyed by an integer "id"
// drawn from the counters collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	if err := database.EnsureIDIndex(ctx, col); err != nil {
		logger.Warnf("content: ensure id index: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, it content.Item) (content.Item, error) {
	id, err := database.NextSequence(ctx, m.col.Database(), m.col.Name())
	if err != nil {
		return content.Item{}, err
	}
	it.ID = id
	if _, err := m.col.InsertOne(ctx, it.Record()); err != nil {
		return content.Item{}, err
	}
	return it, nil
}

func (m *MongoRepo) Get(ctx context.Context, id int64) (content.Item, error) {
	var r content.Record
	if err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return content.Item{}, ErrNotFound
		}
		return content.Item{}, err
	}
	return content.FromRecord(r)
}

func (m *MongoRepo) List(ctx context.Context) ([]content.Item, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []content.Item{}
	for cur.Next(ctx) {
		var r content.Record
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		it, err := content.FromRecord(r)
		if err != nil {
			logger.Warnf("content: skipping record %d: %v", r.ID, err)
			continue
		}
		out = append(out, it)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Replace(ctx context.Context, it content.Item) error {
	res, err := m.col.ReplaceOne(ctx, bson.M{"id": it.ID}, it.Record())
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
