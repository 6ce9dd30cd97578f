package repository

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
)

func exerciseCRUD(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	a, err := r.Create(ctx, content.Item{Type: content.TypeFAQ, Title: "Why Go?", Description: "Because it is simple", Details: content.FAQDetails{Answer: "yes"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)
	b, err := r.Create(ctx, content.Item{Type: content.TypePage, Title: "About", Description: "About the agency", Slug: "about"})
	require.NoError(t, err)
	require.Equal(t, int64(2), b.ID)

	got, err := r.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "yes", got.Details.(content.FAQDetails).Answer)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, a.ID, list[0].ID)

	got.Title = "Why Go, really?"
	require.NoError(t, r.Replace(ctx, got))
	got2, err := r.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Why Go, really?", got2.Title)

	require.ErrorIs(t, r.Replace(ctx, content.Item{ID: 99, Type: content.TypeFAQ}), ErrNotFound)

	require.NoError(t, r.Delete(ctx, a.ID))
	_, err = r.Get(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, a.ID), ErrNotFound)

	// ids are never reused
	c, err := r.Create(ctx, content.Item{Type: content.TypeFAQ, Title: "Again", Description: "Another question"})
	require.NoError(t, err)
	require.Equal(t, int64(3), c.ID)
}

func TestMemoryRepoCRUD(t *testing.T) {
	exerciseCRUD(t, NewMemoryRepo())
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	it, err := r.Create(ctx, content.Item{Type: content.TypeBlogPost, Title: "Post", SEO: content.SEO{Keywords: []string{"go"}}})
	require.NoError(t, err)

	got, _ := r.Get(ctx, it.ID)
	got.SEO.Keywords[0] = "mutated"
	again, _ := r.Get(ctx, it.ID)
	require.Equal(t, "go", again.SEO.Keywords[0])
}

func TestRedisRepoCRUD(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	exerciseCRUD(t, NewRedisRepo(client, "test:content:"))

	require.True(t, m.Exists("test:content:item:2"))
	require.False(t, m.Exists("test:content:item:1"))
}
