package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/service"
	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
	"github.com/lumenworks/sitecms/backend/go-services/internal/jobs"
	"github.com/lumenworks/sitecms/backend/go-services/internal/navigation"
	"github.com/lumenworks/sitecms/backend/go-services/internal/settings"
)

func id(v int64) *int64 { return &v }

func section(sid int64, page *int64, anchor *int64, pos content.Position) content.Item {
	return content.Item{
		ID:        sid,
		Type:      content.TypePageSection,
		Published: true,
		Placement: &content.Placement{PageID: page, SectionID: anchor, Position: pos},
	}
}

func ids(items []content.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestComposeOrdersByPosition(t *testing.T) {
	page := content.Item{ID: 1, Type: content.TypePage}
	got := Compose(page, []content.Item{
		section(14, id(1), nil, content.PositionBottom),
		section(12, id(1), nil, content.PositionMiddle),
		section(11, id(1), nil, content.PositionTop),
		section(13, id(1), nil, ""),
		section(20, id(2), nil, content.PositionTop),
	})
	assert.Equal(t, []int64{11, 12, 13, 14}, ids(got))
}

func TestComposeRelativeAndDangling(t *testing.T) {
	page := content.Item{ID: 1, Type: content.TypePage}
	got := Compose(page, []content.Item{
		section(10, id(1), nil, content.PositionTop),
		section(11, id(1), nil, content.PositionBottom),
		section(30, nil, id(31), content.PositionAfter), // chained on 31
		section(31, nil, id(10), content.PositionAfter),
		section(32, id(1), id(11), content.PositionBefore),
		section(40, id(1), id(999), content.PositionAfter), // dangling anchor
		section(41, nil, id(998), content.PositionBefore),  // dangling, other page
		section(50, id(2), nil, content.PositionTop),
		section(51, nil, id(50), content.PositionAfter), // anchored on page 2
	})
	assert.Equal(t, []int64{10, 31, 30, 32, 11, 40}, ids(got))
}

func newSite(t *testing.T) (*Service, *service.Service, *jobs.Service) {
	t.Helper()
	bus := events.NewBus()
	c := service.NewMemoryService(bus)
	j := jobs.NewService(jobs.NewMemoryRepo(), bus)
	s := NewService(c, navigation.NewService(navigation.NewMemoryRepo(), bus), j, settings.NewService(settings.NewMemoryRepo(), bus))
	return s, c, j
}

func TestPublishedOnly(t *testing.T) {
	s, c, j := newSite(t)
	ctx := context.Background()

	page, err := c.AddContent(ctx, content.Item{Type: content.TypePage, Title: "About", Slug: "about", Published: true})
	require.NoError(t, err)
	_, err = c.AddContent(ctx, content.Item{Type: content.TypePage, Title: "Draft", Slug: "draft"})
	require.NoError(t, err)
	_, err = c.AddContent(ctx, content.Item{Type: content.TypePageSection, Title: "Hero", Published: true,
		Placement: &content.Placement{PageID: id(page.ID), Position: content.PositionTop}})
	require.NoError(t, err)
	_, err = c.AddContent(ctx, content.Item{Type: content.TypePageSection, Title: "Hidden",
		Placement: &content.Placement{PageID: id(page.ID), Position: content.PositionTop}})
	require.NoError(t, err)
	_, err = c.AddContent(ctx, content.Item{Type: content.TypeBlogPost, Title: "Hello", Slug: "hello", Published: true})
	require.NoError(t, err)

	pages, err := s.List(ctx, content.TypePage)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	view, err := s.Page(ctx, "about")
	require.NoError(t, err)
	require.Len(t, view.Sections, 1)
	assert.Equal(t, "Hero", view.Sections[0].Title)

	_, err = s.Page(ctx, "draft")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Page(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	post, err := s.BlogPost(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)

	_, err = s.List(ctx, content.Type("nope"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = j.Create(ctx, jobs.Opening{Title: "Go Engineer", Type: jobs.FullTime, Published: true})
	require.NoError(t, err)
	_, err = j.Create(ctx, jobs.Opening{Title: "Intern", Type: jobs.PartTime})
	require.NoError(t, err)
	open, err := s.Jobs(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	st, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), st)
}
