package repository

import (
	"context"
	"errors"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
)

var (
	ErrNotFound = errors.New("content item not found")
)

// Repository persists content items. Implementations assign ids in Create
// and never change them afterwards.
type Repository interface {
	Create(ctx context.Context, it content.Item) (content.Item, error)
	Get(ctx context.Context, id int64) (content.Item, error)
	List(ctx context.Context) ([]content.Item, error)
	Replace(ctx context.Context, it content.Item) error
	Delete(ctx context.Context, id int64) error
}
