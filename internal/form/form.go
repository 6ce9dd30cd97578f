package form

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/metrics"
)

const (
	TabBasic     = "Basic Info"
	TabSEO       = "SEO"
	TabMedia     = "Media"
	TabPlacement = "Placement"
)

var (
	// ErrBlocked is returned by Submit when a blocking rule failed. The
	// field messages are available from FormErrors.
	ErrBlocked         = errors.New("submission blocked by validation errors")
	ErrInvalidVideoURL = errors.New("only YouTube links (youtube.com, youtu.be) can be added")
)

// SaveFunc persists the assembled item and returns the stored version.
type SaveFunc func(ctx context.Context, it content.Item) (content.Item, error)

type Options struct {
	// InitialValues prefills the form; with IsEditing its id is kept on save.
	InitialValues *content.Item
	OnSave        SaveFunc
	OnCancel      func()
	IsEditing     bool
	Notifier      Notifier
	Now           func() time.Time
}

// Form holds the editing state of one content item. Plain inputs are
// exported fields; inputs with derived state go through methods.
type Form struct {
	opts Options

	typ      content.Type
	title    string
	slug     string
	autoSlug bool
	sub      SubForm

	Subtitle         string
	Description      string
	Content          string
	Published        bool
	ShowInNavigation bool
	Language         string

	SEOTitle       string
	SEODescription string
	keywords       ListField

	images    []content.Media
	documents []content.Media
	videos    []string

	// Placement inputs are kept as typed until submit.
	PlacementPageID    string
	PlacementSectionID string
	PlacementPosition  content.Position

	errors   map[string]string
	warnings []string
}

func New(opts Options) *Form {
	if opts.Notifier == nil {
		opts.Notifier = discard{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	f := &Form{
		opts:      opts,
		typ:       content.TypePage,
		autoSlug:  true,
		Published: true,
		keywords:  NewListField(content.SepComma),
	}
	if iv := opts.InitialValues; iv != nil {
		f.load(*iv)
	}
	f.sub = mountSubForm(f.typ, f.initialDetails())
	return f
}

func (f *Form) load(it content.Item) {
	if it.Type.Valid() {
		f.typ = it.Type
	}
	f.title = it.Title
	f.slug = it.Slug
	f.autoSlug = it.Slug == ""
	f.Subtitle = it.Subtitle
	f.Description = it.Description
	f.Content = it.Content
	f.Published = it.Published
	f.ShowInNavigation = it.ShowInNavigation
	f.Language = it.Language
	f.SEOTitle = it.SEO.Title
	f.SEODescription = it.SEO.Description
	f.keywords.Set(content.DedupKeywords(it.SEO.Keywords))
	f.images = append([]content.Media(nil), it.Images...)
	f.documents = append([]content.Media(nil), it.Documents...)
	f.videos = append([]string(nil), it.Videos...)
	if p := it.Placement; p != nil {
		f.PlacementPageID = content.FormatID(p.PageID)
		f.PlacementSectionID = content.FormatID(p.SectionID)
		f.PlacementPosition = p.Position
	}
}

func (f *Form) initialDetails() content.Details {
	if f.opts.InitialValues == nil {
		return nil
	}
	return f.opts.InitialValues.Details
}

// Type is the currently selected content type.
func (f *Form) Type() content.Type { return f.typ }

// SetType switches the selected type and mounts its sub-form. Switching
// back to the initial type restores the initial details.
func (f *Form) SetType(t content.Type) error {
	if _, err := content.ParseType(string(t)); err != nil {
		return err
	}
	if t == f.typ {
		return nil
	}
	f.typ = t
	f.sub = mountSubForm(t, f.initialDetails())
	return nil
}

// Sub returns the mounted variant sub-form, or nil.
func (f *Form) Sub() SubForm { return f.sub }

// Tabs lists the visible tabs in display order.
func (f *Form) Tabs() []string {
	tabs := []string{TabBasic, TabSEO, TabMedia, TabPlacement}
	if f.sub != nil {
		tabs = append(tabs, f.sub.Tab())
	}
	return tabs
}

func (f *Form) Title() string { return f.title }

// SetTitle updates the title and, while auto-generation is on, the slug.
func (f *Form) SetTitle(s string) {
	f.title = s
	if f.autoSlug {
		f.slug = content.Slugify(s)
	}
}

func (f *Form) Slug() string { return f.slug }

// SetSlug edits the slug by hand, which turns auto-generation off.
func (f *Form) SetSlug(s string) {
	f.autoSlug = false
	f.slug = strings.TrimSpace(s)
}

func (f *Form) AutoSlug() bool { return f.autoSlug }

// SetAutoSlug toggles slug generation. Turning it off freezes the slug;
// turning it on regenerates it once from the current title.
func (f *Form) SetAutoSlug(on bool) {
	if on && !f.autoSlug {
		f.slug = content.Slugify(f.title)
	}
	f.autoSlug = on
}

func (f *Form) Keywords() []string { return f.keywords.Items() }

func (f *Form) KeywordsText() string { return f.keywords.Text() }

// SetKeywordsText parses the comma-separated SEO keywords input.
func (f *Form) SetKeywordsText(text string) {
	f.keywords.SetText(text)
	f.keywords.Set(content.DedupKeywords(f.keywords.Items()))
}

// AddKeyword appends a tag unless it is empty or already present.
func (f *Form) AddKeyword(k string) bool {
	before := f.keywords.Len()
	f.keywords.Set(content.DedupKeywords(append(f.keywords.Items(), k)))
	return f.keywords.Len() > before
}

// RemoveKeyword drops the tag, ignoring case.
func (f *Form) RemoveKeyword(k string) bool {
	items := f.keywords.Items()
	for i, cur := range items {
		if strings.EqualFold(cur, strings.TrimSpace(k)) {
			f.keywords.Set(append(items[:i], items[i+1:]...))
			return true
		}
	}
	return false
}

func (f *Form) Images() []content.Media    { return append([]content.Media(nil), f.images...) }
func (f *Form) Documents() []content.Media { return append([]content.Media(nil), f.documents...) }
func (f *Form) Videos() []string           { return append([]string(nil), f.videos...) }

// AddImage appends a stored reference or a pending upload.
func (f *Form) AddImage(m content.Media) { f.images = appendMedia(f.images, m) }

func (f *Form) AddDocument(m content.Media) { f.documents = appendMedia(f.documents, m) }

func (f *Form) RemoveImage(i int) bool {
	var ok bool
	f.images, ok = removeAt(f.images, i)
	return ok
}

func (f *Form) RemoveDocument(i int) bool {
	var ok bool
	f.documents, ok = removeAt(f.documents, i)
	return ok
}

// MoveImage moves the image at from to index to.
func (f *Form) MoveImage(from, to int) bool {
	if from < 0 || from >= len(f.images) || to < 0 || to >= len(f.images) {
		return false
	}
	m := f.images[from]
	f.images = append(f.images[:from], f.images[from+1:]...)
	f.images = append(f.images[:to], append([]content.Media{m}, f.images[to:]...)...)
	return true
}

// AddVideo appends a YouTube link. Other URLs are rejected with an inline
// error on the videos field and the list is left unchanged.
func (f *Form) AddVideo(url string) error {
	url = strings.TrimSpace(url)
	if !content.IsVideoURL(url) {
		f.setFieldError("videos", ErrInvalidVideoURL.Error())
		return ErrInvalidVideoURL
	}
	f.clearFieldError("videos")
	f.videos = append(f.videos, url)
	return nil
}

func (f *Form) RemoveVideo(i int) bool {
	var ok bool
	f.videos, ok = removeAt(f.videos, i)
	return ok
}

// FormErrors returns the inline field messages of the last submit or edit.
func (f *Form) FormErrors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Warnings returns the advisory messages of the last submit.
func (f *Form) Warnings() []string { return append([]string(nil), f.warnings...) }

// Item assembles the current state into a content item.
func (f *Form) Item() content.Item {
	it := content.Item{
		Type:        f.typ,
		Title:       f.title,
		Subtitle:    f.Subtitle,
		Description: f.Description,
		Content:     f.Content,
		Published:   f.Published,
		Slug:        f.slug,
		Language:    f.Language,
		SEO: content.SEO{
			Title:       f.SEOTitle,
			Description: f.SEODescription,
			Keywords:    content.DedupKeywords(f.keywords.Items()),
		},
		Images:    f.Images(),
		Documents: f.Documents(),
		Videos:    content.CleanList(f.videos),
	}
	if f.typ == content.TypePage {
		it.ShowInNavigation = f.ShowInNavigation
	}
	if f.typ == content.TypePageSection {
		p := &content.Placement{
			PageID:    content.ParseID(f.PlacementPageID),
			SectionID: content.ParseID(f.PlacementSectionID),
			Position:  f.PlacementPosition,
		}
		if !p.Empty() {
			it.Placement = p
		}
	}
	if f.sub != nil {
		it.Details = f.sub.details()
	}
	if f.opts.IsEditing && f.opts.InitialValues != nil {
		it.ID = f.opts.InitialValues.ID
	}
	return it
}

// Submit validates, normalizes and hands the item to OnSave. A blocked
// submission keeps all form state and returns ErrBlocked.
func (f *Form) Submit(ctx context.Context) (content.Item, error) {
	it := f.Item()
	res := content.Validate(it)
	f.warnings = res.Warnings
	if res.Blocked() {
		f.errors = res.Errors
		metrics.FormSubmissions.WithLabelValues("blocked").Inc()
		f.opts.Notifier.Notify(Toast{
			Variant:     VariantDestructive,
			Title:       "Please fix the highlighted fields",
			Description: joinMessages(res.Errors),
		})
		return content.Item{}, ErrBlocked
	}
	f.errors = nil
	if len(res.Warnings) > 0 {
		f.opts.Notifier.Notify(Toast{
			Variant:     VariantDefault,
			Title:       "Saved with suggestions",
			Description: strings.Join(res.Warnings, " "),
		})
	}
	it.LastUpdated = f.opts.Now()
	if f.opts.OnSave != nil {
		saved, err := f.opts.OnSave(ctx, it)
		if err != nil {
			metrics.FormSubmissions.WithLabelValues("error").Inc()
			f.opts.Notifier.Notify(Toast{Variant: VariantDestructive, Title: "Could not save content", Description: err.Error()})
			return content.Item{}, err
		}
		it = saved
	}
	metrics.FormSubmissions.WithLabelValues("saved").Inc()
	verb := "created"
	if f.opts.IsEditing {
		verb = "updated"
	}
	f.opts.Notifier.Notify(Toast{Variant: VariantDefault, Title: it.Type.Label() + " " + verb})
	return it, nil
}

// Cancel abandons the edit.
func (f *Form) Cancel() {
	if f.opts.OnCancel != nil {
		f.opts.OnCancel()
	}
}

func (f *Form) setFieldError(field, msg string) {
	if f.errors == nil {
		f.errors = map[string]string{}
	}
	f.errors[field] = msg
}

func (f *Form) clearFieldError(field string) { delete(f.errors, field) }

func appendMedia(list []content.Media, m content.Media) []content.Media {
	if m.URL == "" && m.Upload == nil {
		return list
	}
	return append(list, m)
}

func removeAt[T any](list []T, i int) ([]T, bool) {
	if i < 0 || i >= len(list) {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}

func joinMessages(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, errs[k])
	}
	return strings.Join(msgs, ". ")
}
