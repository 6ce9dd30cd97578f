package site

import (
	"sort"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// Compose orders the sections that render on page. Sections placed directly
// on the page go top, then middle (or unset), then bottom, each by id.
// Before/after sections are inserted next to their anchor, following chains.
// A section whose anchor is not on the page is appended at the end.
func Compose(page content.Item, sections []content.Item) []content.Item {
	onPage := func(s content.Item) bool {
		return s.Placement != nil && s.Placement.PageID != nil && *s.Placement.PageID == page.ID
	}

	var top, middle, bottom, relative []content.Item
	for _, s := range sections {
		p := s.Placement
		if p == nil {
			continue
		}
		switch p.Position {
		case content.PositionBefore, content.PositionAfter:
			if p.SectionID != nil {
				relative = append(relative, s)
				continue
			}
			if onPage(s) {
				middle = append(middle, s)
			}
		case content.PositionTop:
			if onPage(s) {
				top = append(top, s)
			}
		case content.PositionBottom:
			if onPage(s) {
				bottom = append(bottom, s)
			}
		default:
			if onPage(s) {
				middle = append(middle, s)
			}
		}
	}

	out := append(append(append([]content.Item{}, sortByID(top)...), sortByID(middle)...), sortByID(bottom)...)
	pending := sortByID(relative)
	for len(pending) > 0 {
		var next []content.Item
		for _, s := range pending {
			at := indexOf(out, *s.Placement.SectionID)
			if at < 0 {
				next = append(next, s)
				continue
			}
			if s.Placement.Position == content.PositionAfter {
				at++
			}
			out = append(out[:at], append([]content.Item{s}, out[at:]...)...)
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}

	// unresolved anchors only render here when the section names this page
	for _, s := range pending {
		if !onPage(s) {
			continue
		}
		logger.Debugf("page %d: section %d anchors on missing section %d; appended", page.ID, s.ID, *s.Placement.SectionID)
		out = append(out, s)
	}
	return out
}

func sortByID(items []content.Item) []content.Item {
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func indexOf(items []content.Item, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
