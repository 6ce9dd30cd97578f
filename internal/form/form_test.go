package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/service"
)

func newTestForm(t *testing.T, opts Options) (*Form, *[]content.Item, *Recorder) {
	t.Helper()
	var saved []content.Item
	rec := &Recorder{}
	if opts.OnSave == nil {
		opts.OnSave = func(ctx context.Context, it content.Item) (content.Item, error) {
			saved = append(saved, it)
			return it, nil
		}
	}
	opts.Notifier = rec
	opts.Now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	return New(opts), &saved, rec
}

func fillRequired(f *Form) {
	f.SetTitle("Valid title")
	f.Description = "A description long enough"
}

func TestSubmit_SucceedsForEveryType(t *testing.T) {
	for _, typ := range content.Types() {
		t.Run(string(typ), func(t *testing.T) {
			f, saved, _ := newTestForm(t, Options{})
			require.NoError(t, f.SetType(typ))
			fillRequired(f)
			it, err := f.Submit(context.Background())
			require.NoError(t, err)
			require.Equal(t, typ, it.Type)
			require.Len(t, *saved, 1)
			require.Empty(t, f.FormErrors())
		})
	}
}

func TestSubmit_EmptySlugBlocksRoutedTypes(t *testing.T) {
	for _, typ := range []content.Type{content.TypePage, content.TypeBlogPost, content.TypeService, content.TypePortfolio} {
		t.Run(string(typ), func(t *testing.T) {
			f, saved, rec := newTestForm(t, Options{})
			require.NoError(t, f.SetType(typ))
			f.SetAutoSlug(false)
			fillRequired(f)
			require.Empty(t, f.Slug())

			_, err := f.Submit(context.Background())
			require.ErrorIs(t, err, ErrBlocked)
			require.Empty(t, *saved)
			require.Contains(t, f.FormErrors(), "slug")
			toasts := rec.Toasts()
			require.Len(t, toasts, 1)
			require.Equal(t, VariantDestructive, toasts[0].Variant)
			// state is kept
			require.Equal(t, "Valid title", f.Title())
		})
	}
}

func TestSubmit_BlocksShortTitleAndDescription(t *testing.T) {
	f, saved, _ := newTestForm(t, Options{})
	require.NoError(t, f.SetType(content.TypeFAQ))
	f.SetTitle("Hi")
	f.Description = "short"
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrBlocked)
	errs := f.FormErrors()
	require.Contains(t, errs, "title")
	require.Contains(t, errs, "description")
	require.Empty(t, *saved)
}

func TestAutoSlug(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	f.SetTitle("My Great Post!")
	require.Equal(t, "my-great-post", f.Slug())

	f.SetAutoSlug(false)
	f.SetTitle("Something Else")
	require.Equal(t, "my-great-post", f.Slug())

	f.SetAutoSlug(true)
	require.Equal(t, "something-else", f.Slug())
}

func TestListField_RoundTrip(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	require.NoError(t, f.SetType(content.TypeCaseStudy))
	cs := f.Sub().(*CaseStudyForm)
	cs.Technologies.SetText("React, Node.js,  Vue ")
	require.Equal(t, []string{"React", "Node.js", "Vue"}, cs.Technologies.Items())
	require.Equal(t, "React, Node.js, Vue", cs.Technologies.Text())

	fillRequired(f)
	it, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"React", "Node.js", "Vue"}, it.Details.(content.CaseStudyDetails).Technologies)

	nl := NewListField(content.SepNewline)
	nl.SetText("Ship features\r\n\n  Review code  \n")
	require.Equal(t, []string{"Ship features", "Review code"}, nl.Items())
	require.Equal(t, "Ship features\nReview code", nl.Text())
}

func TestAddVideo(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	require.ErrorIs(t, f.AddVideo("https://vimeo.com/123"), ErrInvalidVideoURL)
	require.Empty(t, f.Videos())
	require.Contains(t, f.FormErrors(), "videos")

	require.NoError(t, f.AddVideo("https://youtu.be/abc123"))
	require.Equal(t, []string{"https://youtu.be/abc123"}, f.Videos())
	require.NotContains(t, f.FormErrors(), "videos")
	require.True(t, f.RemoveVideo(0))
	require.False(t, f.RemoveVideo(0))
}

func TestTestimonialRatingIsNotClamped(t *testing.T) {
	f, _, rec := newTestForm(t, Options{})
	require.NoError(t, f.SetType(content.TypeTestimonial))
	fillRequired(f)
	f.Sub().(*TestimonialForm).Rating = "7"
	it, err := f.Submit(context.Background())
	require.NoError(t, err)
	rating := it.Details.(content.TestimonialDetails).Rating
	require.NotNil(t, rating)
	require.Equal(t, 7.0, *rating)
	require.NotEmpty(t, f.Warnings())
	assert.Equal(t, VariantDefault, rec.Toasts()[0].Variant)
}

func TestEmptyNumericInputsStayAbsent(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	require.NoError(t, f.SetType(content.TypeJobPosting))
	fillRequired(f)
	job := f.Sub().(*JobPostingForm)
	job.SalaryMin = ""
	job.SalaryMax = "90000"
	it, err := f.Submit(context.Background())
	require.NoError(t, err)
	d := it.Details.(content.JobPostingDetails)
	require.Nil(t, d.SalaryMin)
	require.Equal(t, 90000.0, *d.SalaryMax)
}

func TestPlacementOnlyWhenSet(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	require.NoError(t, f.SetType(content.TypePageSection))
	fillRequired(f)
	it, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Nil(t, it.Placement)
	require.NotEmpty(t, f.Warnings())

	f.PlacementPageID = "4"
	f.PlacementPosition = content.PositionBottom
	it, err = f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, it.Placement)
	require.Equal(t, int64(4), *it.Placement.PageID)
	require.Nil(t, it.Placement.SectionID)
	require.Empty(t, f.Warnings())
}

func TestBlogPostWithoutKeywordsWarnsAndSaves(t *testing.T) {
	f, saved, rec := newTestForm(t, Options{})
	require.NoError(t, f.SetType(content.TypeBlogPost))
	fillRequired(f)
	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, *saved, 1)
	require.Len(t, rec.Toasts(), 2)
	require.Equal(t, VariantDefault, rec.Toasts()[0].Variant)
}

func TestKeywordsTagEditor(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	require.True(t, f.AddKeyword("go"))
	require.False(t, f.AddKeyword("Go"))
	require.False(t, f.AddKeyword("  "))
	require.True(t, f.AddKeyword("cms"))
	require.Equal(t, "go, cms", f.KeywordsText())
	require.True(t, f.RemoveKeyword("GO"))
	require.Equal(t, []string{"cms"}, f.Keywords())

	f.SetKeywordsText("a, b, A, ,c")
	require.Equal(t, []string{"a", "b", "c"}, f.Keywords())
}

func TestTabsFollowType(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	require.Equal(t, []string{TabBasic, TabSEO, TabMedia, TabPlacement}, f.Tabs())
	require.Nil(t, f.Sub())

	require.NoError(t, f.SetType(content.TypeTeamMember))
	require.Equal(t, "Team Member", f.Tabs()[4])
	require.IsType(t, &TeamMemberForm{}, f.Sub())

	require.Error(t, f.SetType("newsletter"))
	require.Equal(t, content.TypeTeamMember, f.Type())
}

func TestEditPreservesIDAndRestoresDetails(t *testing.T) {
	rating := 4.0
	initial := content.Item{
		ID: 42, Type: content.TypeTestimonial, Title: "Great work", Description: "They shipped on time",
		Published: true, Details: content.TestimonialDetails{Author: "Sam", Rating: &rating},
	}
	f, _, _ := newTestForm(t, Options{InitialValues: &initial, IsEditing: true})
	tf := f.Sub().(*TestimonialForm)
	require.Equal(t, "Sam", tf.Author)
	require.Equal(t, "4", tf.Rating)

	require.NoError(t, f.SetType(content.TypeFAQ))
	require.NoError(t, f.SetType(content.TypeTestimonial))
	require.Equal(t, "Sam", f.Sub().(*TestimonialForm).Author)

	it, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), it.ID)
	require.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), it.LastUpdated)
}

func TestMediaListEditing(t *testing.T) {
	f, _, _ := newTestForm(t, Options{})
	f.AddImage(content.Ref("a.png"))
	f.AddImage(content.Ref("b.png"))
	f.AddImage(content.Media{Upload: &content.Upload{Filename: "c.png"}})
	f.AddImage(content.Media{})
	require.Len(t, f.Images(), 3)

	require.True(t, f.MoveImage(2, 0))
	require.Equal(t, "c.png", f.Images()[0].Upload.Filename)
	require.Equal(t, "b.png", f.Images()[2].URL)
	require.False(t, f.MoveImage(0, 5))

	require.True(t, f.RemoveImage(1))
	require.Len(t, f.Images(), 2)

	f.AddDocument(content.Ref("brochure.pdf"))
	require.True(t, f.RemoveDocument(0))
	require.Empty(t, f.Documents())
}

func TestSubmit_ReturnsSaveErrors(t *testing.T) {
	boom := errors.New("storage unavailable")
	f, _, rec := newTestForm(t, Options{OnSave: func(ctx context.Context, it content.Item) (content.Item, error) {
		return content.Item{}, boom
	}})
	require.NoError(t, f.SetType(content.TypeFAQ))
	fillRequired(f)
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, VariantDestructive, rec.Toasts()[0].Variant)
}

func TestCancel(t *testing.T) {
	called := false
	f := New(Options{OnCancel: func() { called = true }})
	f.Cancel()
	require.True(t, called)
	New(Options{}).Cancel()
}

func TestSubmission_ApplyDrivesSameFlow(t *testing.T) {
	svc := service.NewMemoryService(nil)
	f, _, _ := newTestForm(t, Options{OnSave: svc.AddContent})
	sub := Submission{
		Type:         "case-study",
		Title:        "Migrating to Go",
		Description:  "How we moved a monolith",
		Technologies: "Go, Redis,  MongoDB ",
		Keywords:     "go, Go, migration",
		Videos:       []string{"https://www.youtube.com/watch?v=x", "https://vimeo.com/1"},
	}
	require.NoError(t, sub.Apply(f))
	require.Equal(t, "migrating-to-go", f.Slug())
	require.Contains(t, f.FormErrors(), "videos")

	it, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), it.ID)
	require.Equal(t, []string{"go", "migration"}, it.SEO.Keywords)
	require.Equal(t, []string{"https://www.youtube.com/watch?v=x"}, it.Videos)
	require.Equal(t, []string{"Go", "Redis", "MongoDB"}, it.Details.(content.CaseStudyDetails).Technologies)

	bad := Submission{Type: "page", PlacementPosition: "sideways"}
	require.Error(t, bad.Apply(New(Options{})))
}
