package form

import "github.com/lumenworks/sitecms/backend/go-services/internal/content"

// ListField is a list-valued input. The list is the only state; the text
// view is derived from it whenever it is asked for.
type ListField struct {
	sep   string
	items []string
}

// NewListField creates a field using sep (content.SepComma or
// content.SepNewline) for its text view.
func NewListField(sep string, items ...string) ListField {
	return ListField{sep: sep, items: content.CleanList(items)}
}

// Items returns a copy of the current list.
func (l ListField) Items() []string {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Text renders the list for editing.
func (l ListField) Text() string { return content.JoinList(l.items, l.sep) }

// SetText replaces the list with the parsed entries of text.
func (l *ListField) SetText(text string) { l.items = content.SplitList(text, l.sep) }

// Set replaces the list.
func (l *ListField) Set(items []string) { l.items = content.CleanList(items) }

func (l ListField) Len() int { return len(l.items) }
