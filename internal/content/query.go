package content

import (
	"sort"
	"strings"
)

// SortField orders admin listings.
type SortField string

const (
	SortByID          SortField = "id"
	SortByTitle       SortField = "title"
	SortByLastUpdated SortField = "lastUpdated"
)

// ListOptions filters and orders a listing. Zero value lists everything by id.
type ListOptions struct {
	Type      Type
	Published *bool
	Search    string
	Sort      SortField
	Desc      bool
}

// ParseSort reads "title", "-lastUpdated" style sort keys.
func ParseSort(s string) (SortField, bool) {
	desc := strings.HasPrefix(s, "-")
	switch f := SortField(strings.TrimPrefix(s, "-")); f {
	case SortByTitle, SortByLastUpdated:
		return f, desc
	}
	return SortByID, desc
}

// Matches reports whether it passes the filters of o.
func (o ListOptions) Matches(it Item) bool {
	if o.Type != "" && it.Type != o.Type {
		return false
	}
	if o.Published != nil && it.Published != *o.Published {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(o.Search)); q != "" {
		hay := strings.ToLower(it.Title + "\n" + it.Description + "\n" + it.Slug)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// Apply filters and sorts items in place order, returning a new slice.
func (o ListOptions) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if o.Matches(it) {
			out = append(out, it)
		}
	}
	less := func(a, b Item) bool { return a.ID < b.ID }
	switch o.Sort {
	case SortByTitle:
		less = func(a, b Item) bool {
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta == tb {
				return a.ID < b.ID
			}
			return ta < tb
		}
	case SortByLastUpdated:
		less = func(a, b Item) bool {
			if a.LastUpdated.Equal(b.LastUpdated) {
				return a.ID < b.ID
			}
			return a.LastUpdated.Before(b.LastUpdated)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if o.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
