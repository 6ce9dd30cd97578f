package form

import (
	"fmt"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
)

// Submission is the form payload an admin client posts. Every input is
// carried the way it was typed; lists use the same comma or newline text
// the form fields show.
type Submission struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Published   *bool  `json:"published"`
	Slug        string `json:"slug"`
	// AutoSlug defaults to on when no slug is given.
	AutoSlug         *bool  `json:"autoSlug"`
	ShowInNavigation bool   `json:"showInNavigation"`
	Language         string `json:"language"`

	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	Keywords       string `json:"keywords"`

	Images    []string `json:"images"`
	Documents []string `json:"documents"`
	Videos    []string `json:"videos"`

	PlacementPageID    string `json:"placementPageId"`
	PlacementSectionID string `json:"placementSectionId"`
	PlacementPosition  string `json:"placementPosition"`

	Author           string `json:"author"`
	Role             string `json:"role"`
	Company          string `json:"company"`
	Rating           string `json:"rating"`
	Answer           string `json:"answer"`
	Department       string `json:"department"`
	Responsibilities string `json:"responsibilities"`
	Client           string `json:"client"`
	Duration         string `json:"duration"`
	Technologies     string `json:"technologies"`
	Challenge        string `json:"challenge"`
	Solution         string `json:"solution"`
	Results          string `json:"results"`
	Location         string `json:"location"`
	Requirements     string `json:"requirements"`
	Benefits         string `json:"benefits"`
	ApplyURL         string `json:"applyUrl"`
	SalaryMin        string `json:"salaryMin"`
	SalaryMax        string `json:"salaryMax"`
	Icon             string `json:"icon"`
}

// Apply drives f through the same inputs a user would touch. Rejected
// video links are left out and reported in f.FormErrors; an unknown type
// or position is returned as an error.
func (s Submission) Apply(f *Form) error {
	if s.Type != "" {
		if err := f.SetType(content.Type(s.Type)); err != nil {
			return err
		}
	}
	pos, err := content.ParsePosition(s.PlacementPosition)
	if err != nil {
		return err
	}

	switch {
	case s.Slug != "":
		f.SetSlug(s.Slug)
		f.SetTitle(s.Title)
	case s.AutoSlug != nil && !*s.AutoSlug:
		f.SetSlug("")
		f.SetTitle(s.Title)
	default:
		f.SetAutoSlug(true)
		f.SetTitle(s.Title)
	}

	f.Subtitle = s.Subtitle
	f.Description = s.Description
	f.Content = s.Content
	if s.Published != nil {
		f.Published = *s.Published
	}
	f.ShowInNavigation = s.ShowInNavigation
	f.Language = s.Language
	f.SEOTitle = s.SEOTitle
	f.SEODescription = s.SEODescription
	f.SetKeywordsText(s.Keywords)

	f.images, f.documents, f.videos = nil, nil, nil
	for _, u := range s.Images {
		f.AddImage(content.Ref(u))
	}
	for _, u := range s.Documents {
		f.AddDocument(content.Ref(u))
	}
	for _, u := range s.Videos {
		_ = f.AddVideo(u)
	}

	f.PlacementPageID = s.PlacementPageID
	f.PlacementSectionID = s.PlacementSectionID
	f.PlacementPosition = pos

	switch sub := f.Sub().(type) {
	case *TestimonialForm:
		sub.Author, sub.Role, sub.Company, sub.Rating = s.Author, s.Role, s.Company, s.Rating
	case *FAQForm:
		sub.Answer = s.Answer
	case *TeamMemberForm:
		sub.Role, sub.Department = s.Role, s.Department
		sub.Responsibilities.SetText(s.Responsibilities)
	case *CaseStudyForm:
		sub.Client, sub.Duration = s.Client, s.Duration
		sub.Technologies.SetText(s.Technologies)
		sub.Challenge, sub.Solution, sub.Results = s.Challenge, s.Solution, s.Results
	case *JobPostingForm:
		sub.Location, sub.Department, sub.ApplyURL = s.Location, s.Department, s.ApplyURL
		sub.Responsibilities.SetText(s.Responsibilities)
		sub.Requirements.SetText(s.Requirements)
		sub.Benefits.SetText(s.Benefits)
		sub.SalaryMin, sub.SalaryMax = s.SalaryMin, s.SalaryMax
	case *ServiceForm:
		sub.Icon = s.Icon
	case nil:
	default:
		return fmt.Errorf("unsupported sub-form %T", sub)
	}
	return nil
}
