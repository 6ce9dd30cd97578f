package content

import "fmt"

// Type discriminates content items. The set is closed.
type Type string

const (
	TypePage        Type = "page"
	TypePageSection Type = "page-section"
	TypeService     Type = "service"
	TypePortfolio   Type = "portfolio"
	TypeBlogPost    Type = "blog-post"
	TypeTestimonial Type = "testimonial"
	TypeFAQ         Type = "faq"
	TypeTeamMember  Type = "team-member"
	TypeCaseStudy   Type = "case-study"
	TypeJobPosting  Type = "job-posting"
)

var allTypes = []Type{
	TypePage, TypePageSection, TypeService, TypePortfolio, TypeBlogPost,
	TypeTestimonial, TypeFAQ, TypeTeamMember, TypeCaseStudy, TypeJobPosting,
}

var typeLabels = map[Type]string{
	TypePage:        "Page",
	TypePageSection: "Page Section",
	TypeService:     "Service",
	TypePortfolio:   "Portfolio",
	TypeBlogPost:    "Blog Post",
	TypeTestimonial: "Testimonial",
	TypeFAQ:         "FAQ",
	TypeTeamMember:  "Team Member",
	TypeCaseStudy:   "Case Study",
	TypeJobPosting:  "Job Posting",
}

// Types returns every content type in display order.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType validates s against the closed set.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := typeLabels[t]; !ok {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return t, nil
}

func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label is the human readable name.
func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// RequiresSlug reports whether items of this type are routed by slug.
func (t Type) RequiresSlug() bool {
	switch t {
	case TypePage, TypeBlogPost, TypeService, TypePortfolio:
		return true
	}
	return false
}

// Position places a page section relative to its page or a sibling section.
type Position string

const (
	PositionTop    Position = "top"
	PositionMiddle Position = "middle"
	PositionBottom Position = "bottom"
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

// ParsePosition accepts the five placement positions; "" is allowed and means unset.
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case "", PositionTop, PositionMiddle, PositionBottom, PositionBefore, PositionAfter:
		return p, nil
	}
	return "", fmt.Errorf("unknown placement position %q", s)
}
