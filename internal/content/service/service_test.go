package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
)

type fakeUploader struct {
	n   int
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, u content.Upload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.n++
	return "https://cdn.example.com/" + u.Filename, nil
}

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func page(title, slug string) content.Item {
	return content.Item{Type: content.TypePage, Title: title, Description: "A page description", Slug: slug, Published: true}
}

func TestAddContent_AssignsIDStampsAndEmitsOnce(t *testing.T) {
	bus := events.NewBus()
	svc := NewMemoryService(bus, WithClock(fixedClock()))
	var got []events.Event
	svc.Subscribe(events.ContentAdded, func(ev events.Event) { got = append(got, ev) })

	it, err := svc.AddContent(context.Background(), page("Home", "home"))
	require.NoError(t, err)
	require.Equal(t, int64(1), it.ID)
	require.False(t, it.LastUpdated.IsZero())
	require.Len(t, got, 1)
	require.Equal(t, it.ID, got[0].EntityID)

	// observable by anyone who re-queries
	all, err := svc.GetAllContent(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateContent_MergesAndRestamps(t *testing.T) {
	svc := NewMemoryService(nil, WithClock(fixedClock()))
	ctx := context.Background()
	it, err := svc.AddContent(ctx, page("Home", "home"))
	require.NoError(t, err)

	updates := 0
	unsub := svc.Subscribe(events.ContentUpdated, func(ev events.Event) { updates++ })
	defer unsub()

	up, err := svc.UpdateContent(ctx, it.ID, content.Partial{"title": "Welcome", "id": 77})
	require.NoError(t, err)
	require.Equal(t, it.ID, up.ID)
	require.Equal(t, "Welcome", up.Title)
	require.Equal(t, "home", up.Slug)
	require.True(t, up.LastUpdated.After(it.LastUpdated))
	require.Equal(t, 1, updates)

	_, err = svc.UpdateContent(ctx, 404, content.Partial{"title": "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContent_LeavesDanglingPlacements(t *testing.T) {
	svc := NewMemoryService(nil)
	ctx := context.Background()
	p, err := svc.AddContent(ctx, page("Services", "services"))
	require.NoError(t, err)
	pid := p.ID
	sec, err := svc.AddContent(ctx, content.Item{
		Type: content.TypePageSection, Title: "Hero", Description: "Hero section for services",
		Placement: &content.Placement{PageID: &pid, Position: content.PositionTop},
	})
	require.NoError(t, err)

	refs, err := svc.References(ctx, pid)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	ok, err := svc.DeleteContent(ctx, pid)
	require.NoError(t, err)
	require.True(t, ok)

	kept, err := svc.GetContent(ctx, sec.ID)
	require.NoError(t, err)
	require.Equal(t, pid, *kept.Placement.PageID)

	ok, err = svc.DeleteContent(ctx, pid)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAddContent_RejectsMismatchedDetails(t *testing.T) {
	svc := NewMemoryService(nil)
	it := page("About", "about")
	it.Details = content.FAQDetails{Answer: "no"}
	_, err := svc.AddContent(context.Background(), it)
	require.ErrorIs(t, err, content.ErrDetailsMismatch)
}

func TestAddContent_StoresPendingMedia(t *testing.T) {
	up := &fakeUploader{}
	svc := NewMemoryService(nil, WithUploader(up))
	it := page("Portfolio", "portfolio")
	it.Type = content.TypePortfolio
	it.Images = []content.Media{
		content.Ref("https://cdn.example.com/existing.png"),
		{Upload: &content.Upload{Filename: "new.png", ContentType: "image/png", Data: []byte{1}}},
	}
	saved, err := svc.AddContent(context.Background(), it)
	require.NoError(t, err)
	require.Equal(t, 1, up.n)
	require.Equal(t, []string{"https://cdn.example.com/existing.png", "https://cdn.example.com/new.png"}, saved.Record().Images)

	noUploader := NewMemoryService(nil)
	_, err = noUploader.AddContent(context.Background(), it)
	require.ErrorIs(t, err, ErrPendingMedia)

	failing := NewMemoryService(nil, WithUploader(&fakeUploader{err: errors.New("bucket down")}))
	_, err = failing.AddContent(context.Background(), it)
	require.Error(t, err)
}

func TestAddContent_SanitizesAndDedups(t *testing.T) {
	svc := NewMemoryService(nil)
	it := content.Item{
		Type: content.TypeBlogPost, Title: "Post", Description: "Some description", Slug: "post",
		Content: `<p>ok</p><script>x()</script>`,
		SEO:     content.SEO{Keywords: []string{"go", "Go", "cms"}},
	}
	saved, err := svc.AddContent(context.Background(), it)
	require.NoError(t, err)
	require.NotContains(t, saved.Content, "script")
	require.Equal(t, []string{"go", "cms"}, saved.SEO.Keywords)

	got, err := svc.GetBySlug(context.Background(), content.TypeBlogPost, "post")
	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
	_, err = svc.GetBySlug(context.Background(), content.TypeBlogPost, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}
