package content

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)

	htmlPolicy = bluemonday.UGCPolicy()
)

// Slugify lowercases s, strips non-word characters and hyphenates runs of
// whitespace: "My Great Post!" becomes "my-great-post".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Separators used by free-text list inputs.
const (
	SepComma   = ","
	SepNewline = "\n"
)

// SplitList explodes delimited text into trimmed, non-empty entries in
// input order.
func SplitList(text, sep string) []string {
	if sep == SepNewline {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	var out []string
	for _, part := range strings.Split(text, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the editing view of a list for the given separator.
func JoinList(items []string, sep string) string {
	if sep == SepComma {
		return strings.Join(items, ", ")
	}
	return strings.Join(items, sep)
}

// CleanList trims entries and drops empty ones.
func CleanList(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DedupKeywords trims, drops empties and removes repeats while keeping the
// first occurrence's position. Matching is case-insensitive.
func DedupKeywords(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := strings.ToLower(k)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
	}
	return out
}

// ParseNumber coerces form input. Empty or unparsable input yields nil so an
// optional field stays absent instead of becoming 0.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseID coerces an id input; empty, non-integer or non-positive input yields nil.
func ParseID(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// FormatNumber is the inverse of ParseNumber for editing.
func FormatNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// FormatID is the inverse of ParseID for editing.
func FormatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// IsVideoURL accepts YouTube links only.
func IsVideoURL(u string) bool {
	u = strings.TrimSpace(u)
	return strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be")
}

// SanitizeHTML strips scripts and unsafe attributes from rich text.
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlPolicy.Sanitize(s)
}
