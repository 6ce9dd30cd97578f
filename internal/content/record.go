package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the flat persisted and wire shape of an item. Type-specific
// fields are omitted when the item's type does not own them.
type Record struct {
	ID               int64      `json:"id" bson:"id"`
	Type             Type       `json:"type" bson:"type"`
	Title            string     `json:"title" bson:"title"`
	Subtitle         string     `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Description      string     `json:"description" bson:"description"`
	Content          string     `json:"content,omitempty" bson:"content,omitempty"`
	Published        *bool      `json:"published,omitempty" bson:"published,omitempty"`
	Slug             string     `json:"slug,omitempty" bson:"slug,omitempty"`
	ShowInNavigation bool       `json:"showInNavigation,omitempty" bson:"showInNavigation,omitempty"`
	Language         string     `json:"language,omitempty" bson:"language,omitempty"`
	LastUpdated      time.Time  `json:"lastUpdated" bson:"lastUpdated"`
	SEOTitle         string     `json:"seoTitle,omitempty" bson:"seoTitle,omitempty"`
	SEODescription   string     `json:"seoDescription,omitempty" bson:"seoDescription,omitempty"`
	SEOKeywords      []string   `json:"seoKeywords,omitempty" bson:"seoKeywords,omitempty"`
	Images           []string   `json:"images,omitempty" bson:"images,omitempty"`
	Documents        []string   `json:"documents,omitempty" bson:"documents,omitempty"`
	Videos           []string   `json:"videos,omitempty" bson:"videos,omitempty"`
	Placement        *Placement `json:"placement,omitempty" bson:"placement,omitempty"`

	// testimonial, team member
	Author  string   `json:"author,omitempty" bson:"author,omitempty"`
	Role    string   `json:"role,omitempty" bson:"role,omitempty"`
	Company string   `json:"company,omitempty" bson:"company,omitempty"`
	Rating  *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	// faq
	Answer string `json:"answer,omitempty" bson:"answer,omitempty"`
	// team member, job posting
	Department       string   `json:"department,omitempty" bson:"department,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty" bson:"responsibilities,omitempty"`
	// case study
	Client       string   `json:"client,omitempty" bson:"client,omitempty"`
	Duration     string   `json:"duration,omitempty" bson:"duration,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	Challenge    string   `json:"challenge,omitempty" bson:"challenge,omitempty"`
	Solution     string   `json:"solution,omitempty" bson:"solution,omitempty"`
	Results      string   `json:"results,omitempty" bson:"results,omitempty"`
	// job posting
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	Requirements []string `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Benefits     []string `json:"benefits,omitempty" bson:"benefits,omitempty"`
	ApplyURL     string   `json:"applyUrl,omitempty" bson:"applyUrl,omitempty"`
	SalaryMin    *float64 `json:"salaryMin,omitempty" bson:"salaryMin,omitempty"`
	SalaryMax    *float64 `json:"salaryMax,omitempty" bson:"salaryMax,omitempty"`
	// service
	Icon string `json:"icon,omitempty" bson:"icon,omitempty"`
}

// Record flattens the item. Pending uploads have no reference yet and are
// left out.
func (it Item) Record() Record {
	it = it.Clone()
	published := it.Published
	r := Record{
		ID:             it.ID,
		Type:           it.Type,
		Title:          it.Title,
		Subtitle:       it.Subtitle,
		Description:    it.Description,
		Content:        it.Content,
		Published:      &published,
		Slug:           it.Slug,
		Language:       it.Language,
		LastUpdated:    it.LastUpdated,
		SEOTitle:       it.SEO.Title,
		SEODescription: it.SEO.Description,
		SEOKeywords:    it.SEO.Keywords,
		Images:         refs(it.Images),
		Documents:      refs(it.Documents),
		Videos:         it.Videos,
	}
	if it.Type == TypePage {
		r.ShowInNavigation = it.ShowInNavigation
	}
	if it.Type == TypePageSection && !it.Placement.Empty() {
		r.Placement = it.Placement
	}
	switch d := it.Details.(type) {
	case TestimonialDetails:
		r.Author, r.Role, r.Company, r.Rating = d.Author, d.Role, d.Company, d.Rating
	case FAQDetails:
		r.Answer = d.Answer
	case TeamMemberDetails:
		r.Role, r.Department, r.Responsibilities = d.Role, d.Department, d.Responsibilities
	case CaseStudyDetails:
		r.Client, r.Duration, r.Technologies = d.Client, d.Duration, d.Technologies
		r.Challenge, r.Solution, r.Results = d.Challenge, d.Solution, d.Results
	case JobPostingDetails:
		r.Location, r.Department = d.Location, d.Department
		r.Responsibilities, r.Requirements, r.Benefits = d.Responsibilities, d.Requirements, d.Benefits
		r.ApplyURL, r.SalaryMin, r.SalaryMax = d.ApplyURL, d.SalaryMin, d.SalaryMax
	case ServiceDetails:
		r.Icon = d.Icon
	}
	return r
}

// FromRecord rebuilds an item. Fields that the record's type does not own
// are dropped, so a record can never carry orphaned details.
func FromRecord(r Record) (Item, error) {
	if !r.Type.Valid() {
		return Item{}, fmt.Errorf("unknown content type %q", r.Type)
	}
	it := Item{
		ID:          r.ID,
		Type:        r.Type,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Content:     r.Content,
		Published:   r.Published == nil || *r.Published,
		Slug:        r.Slug,
		Language:    r.Language,
		LastUpdated: r.LastUpdated,
		SEO: SEO{
			Title:       r.SEOTitle,
			Description: r.SEODescription,
			Keywords:    DedupKeywords(r.SEOKeywords),
		},
		Images:    mediaRefs(r.Images),
		Documents: mediaRefs(r.Documents),
		Videos:    cloneStrings(r.Videos),
	}
	if r.Type == TypePage {
		it.ShowInNavigation = r.ShowInNavigation
	}
	if r.Type == TypePageSection && !r.Placement.Empty() {
		p := *r.Placement
		it.Placement = &p
	}
	switch r.Type {
	case TypeTestimonial:
		it.Details = TestimonialDetails{Author: r.Author, Role: r.Role, Company: r.Company, Rating: r.Rating}
	case TypeFAQ:
		it.Details = FAQDetails{Answer: r.Answer}
	case TypeTeamMember:
		it.Details = TeamMemberDetails{Role: r.Role, Department: r.Department, Responsibilities: cloneStrings(r.Responsibilities)}
	case TypeCaseStudy:
		it.Details = CaseStudyDetails{
			Client: r.Client, Duration: r.Duration, Technologies: cloneStrings(r.Technologies),
			Challenge: r.Challenge, Solution: r.Solution, Results: r.Results,
		}
	case TypeJobPosting:
		it.Details = JobPostingDetails{
			Location: r.Location, Department: r.Department,
			Responsibilities: cloneStrings(r.Responsibilities), Requirements: cloneStrings(r.Requirements),
			Benefits: cloneStrings(r.Benefits), ApplyURL: r.ApplyURL, SalaryMin: r.SalaryMin, SalaryMax: r.SalaryMax,
		}
	case TypeService:
		it.Details = ServiceDetails{Icon: r.Icon}
	}
	return it, nil
}

// MarshalJSON encodes the item in its record shape.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.Record())
}

// UnmarshalJSON decodes a record-shaped document.
func (it *Item) UnmarshalJSON(b []byte) error {
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	out, err := FromRecord(r)
	if err != nil {
		return err
	}
	*it = out
	return nil
}

// Partial is a record-shaped patch keyed by JSON field name.
type Partial map[string]any

// Merge overlays p onto it. The id is immutable and any "id" key is ignored.
func Merge(it Item, p Partial) (Item, error) {
	base, err := json.Marshal(it.Record())
	if err != nil {
		return Item{}, err
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return Item{}, err
	}
	for k, v := range p {
		if k == "id" {
			continue
		}
		if v == nil {
			delete(m, k)
			continue
		}
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return Item{}, err
	}
	var r Record
	if err := json.Unmarshal(merged, &r); err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrInvalidPartial, err)
	}
	r.ID = it.ID
	out, err := FromRecord(r)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrInvalidPartial, err)
	}
	return out, nil
}

func refs(in []Media) []string {
	var out []string
	for _, m := range in {
		if m.URL != "" {
			out = append(out, m.URL)
		}
	}
	return out
}

func mediaRefs(in []string) []Media {
	if len(in) == 0 {
		return nil
	}
	out := make([]Media, 0, len(in))
	for _, u := range in {
		out = append(out, Ref(u))
	}
	return out
}
