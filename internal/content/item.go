package content

import (
	"errors"
	"fmt"
	"time"
)

// Item is a content item as the services see it. The type-specific fields
// live in Details, whose variant must match Type.
type Item struct {
	ID               int64
	Type             Type
	Title            string
	Subtitle         string
	Description      string
	Content          string
	Published        bool
	Slug             string
	ShowInNavigation bool
	Language         string
	LastUpdated      time.Time
	SEO              SEO
	Images           []Media
	Documents        []Media
	Videos           []string
	Placement        *Placement
	Details          Details
}

// SEO metadata. Keywords are deduplicated and ordered.
type SEO struct {
	Title       string
	Description string
	Keywords    []string
}

// Media is either a stored reference (URL) or a local file not yet persisted.
type Media struct {
	URL    string
	Upload *Upload
}

// Upload is a pending binary selected in the form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Pending reports whether the media still needs to be stored.
func (m Media) Pending() bool { return m.URL == "" && m.Upload != nil }

// Ref builds a stored media reference.
func Ref(url string) Media { return Media{URL: url} }

// Placement addresses where a page section renders. PageID and SectionID are
// weak references; nothing enforces that they exist.
type Placement struct {
	PageID    *int64   `json:"pageId,omitempty" bson:"pageId,omitempty"`
	SectionID *int64   `json:"sectionId,omitempty" bson:"sectionId,omitempty"`
	Position  Position `json:"position,omitempty" bson:"position,omitempty"`
}

// Empty reports whether no field of the placement is set.
func (p *Placement) Empty() bool {
	return p == nil || (p.PageID == nil && p.SectionID == nil && p.Position == "")
}

// Details holds the fields owned by one content type.
type Details interface {
	ContentType() Type
}

type TestimonialDetails struct {
	Author  string
	Role    string
	Company string
	Rating  *float64
}

type FAQDetails struct {
	Answer string
}

type TeamMemberDetails struct {
	Role             string
	Department       string
	Responsibilities []string
}

type CaseStudyDetails struct {
	Client       string
	Duration     string
	Technologies []string
	Challenge    string
	Solution     string
	Results      string
}

type JobPostingDetails struct {
	Location         string
	Department       string
	Responsibilities []string
	Requirements     []string
	Benefits         []string
	ApplyURL         string
	SalaryMin        *float64
	SalaryMax        *float64
}

// ServiceDetails carries the icon chosen in the icon selector: either a
// catalog identifier or a data URL.
type ServiceDetails struct {
	Icon string
}

func (TestimonialDetails) ContentType() Type { return TypeTestimonial }
func (FAQDetails) ContentType() Type         { return TypeFAQ }
func (TeamMemberDetails) ContentType() Type  { return TypeTeamMember }
func (CaseStudyDetails) ContentType() Type   { return TypeCaseStudy }
func (JobPostingDetails) ContentType() Type  { return TypeJobPosting }
func (ServiceDetails) ContentType() Type     { return TypeService }

// HasDetails reports whether t owns a details variant.
func HasDetails(t Type) bool {
	switch t {
	case TypeTestimonial, TypeFAQ, TypeTeamMember, TypeCaseStudy, TypeJobPosting, TypeService:
		return true
	}
	return false
}

var ErrDetailsMismatch = errors.New("details do not match content type")

// ErrInvalidPartial wraps a patch whose values do not fit the record shape.
var ErrInvalidPartial = errors.New("invalid partial")

// CheckDetails verifies that the details variant belongs to the item's type
// and that placement is only set on page sections.
func (it *Item) CheckDetails() error {
	if !it.Type.Valid() {
		return fmt.Errorf("unknown content type %q", it.Type)
	}
	if it.Details != nil && it.Details.ContentType() != it.Type {
		return fmt.Errorf("%w: %s details on %s item", ErrDetailsMismatch, it.Details.ContentType(), it.Type)
	}
	if !it.Placement.Empty() && it.Type != TypePageSection {
		return fmt.Errorf("%w: placement on %s item", ErrDetailsMismatch, it.Type)
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (it Item) Clone() Item {
	out := it
	out.SEO.Keywords = cloneStrings(it.SEO.Keywords)
	out.Images = cloneMedia(it.Images)
	out.Documents = cloneMedia(it.Documents)
	out.Videos = cloneStrings(it.Videos)
	if it.Placement != nil {
		p := *it.Placement
		out.Placement = &p
	}
	switch d := it.Details.(type) {
	case TeamMemberDetails:
		d.Responsibilities = cloneStrings(d.Responsibilities)
		out.Details = d
	case CaseStudyDetails:
		d.Technologies = cloneStrings(d.Technologies)
		out.Details = d
	case JobPostingDetails:
		d.Responsibilities = cloneStrings(d.Responsibilities)
		d.Requirements = cloneStrings(d.Requirements)
		d.Benefits = cloneStrings(d.Benefits)
		out.Details = d
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMedia(in []Media) []Media {
	if in == nil {
		return nil
	}
	out := make([]Media, len(in))
	copy(out, in)
	return out
}
