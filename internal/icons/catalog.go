package icons

import (
	"sort"
	"strings"
)

// catalog is the fixed set of icon identifiers the selector offers.
var catalog = []string{
	"activity", "alarm-clock", "archive", "award", "bar-chart", "battery", "bell", "book",
	"bookmark", "box", "briefcase", "brush", "bug", "building", "calendar", "camera",
	"chart-pie", "check", "check-circle", "clipboard", "clock", "cloud", "code", "coffee",
	"cog", "compass", "cpu", "credit-card", "database", "download", "edit", "file",
	"file-text", "film", "flag", "folder", "gift", "git-branch", "globe", "graduation-cap",
	"hammer", "headphones", "heart", "help-circle", "home", "image", "inbox", "key",
	"laptop", "layers", "layout", "lightbulb", "link", "lock", "mail", "map",
	"map-pin", "megaphone", "message-circle", "mic", "monitor", "moon", "mouse-pointer", "music",
	"package", "palette", "pen-tool", "phone", "pie-chart", "plane", "play", "plug",
	"puzzle", "rocket", "save", "search", "send", "server", "settings", "share",
	"shield", "shield-check", "shopping-cart", "smartphone", "smile", "sparkles", "star", "sun",
	"tablet", "tag", "target", "terminal", "thumbs-up", "tool", "trending-up", "trophy",
	"truck", "upload", "user", "users", "video", "wallet", "wifi", "wrench", "zap",
}

var catalogSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(catalog))
	for _, n := range catalog {
		m[n] = struct{}{}
	}
	return m
}()

// Catalog returns all icon identifiers in alphabetical order.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	sort.Strings(out)
	return out
}

// InCatalog reports whether name is a catalog identifier.
func InCatalog(name string) bool {
	_, ok := catalogSet[name]
	return ok
}

// Search matches query as a case-insensitive substring. Names that start
// with the query come first; an empty query returns the whole catalog.
func Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	all := Catalog()
	if q == "" {
		return all
	}
	var prefix, rest []string
	for _, n := range all {
		switch {
		case strings.HasPrefix(n, q):
			prefix = append(prefix, n)
		case strings.Contains(n, q):
			rest = append(rest, n)
		}
	}
	return append(prefix, rest...)
}
