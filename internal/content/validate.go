package content

import (
	"fmt"
	"unicode/utf8"
)

const (
	MinTitleLen       = 3
	MinDescriptionLen = 10
	MinRating         = 1
	MaxRating         = 5
)

// Result separates blocking field errors from advisory warnings.
type Result struct {
	Errors   map[string]string `json:"formErrors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Blocked reports whether submission must be refused.
func (r Result) Blocked() bool { return len(r.Errors) > 0 }

func (r *Result) fail(field, msg string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	r.Errors[field] = msg
}

func (r *Result) warn(msg string) { r.Warnings = append(r.Warnings, msg) }

// Validate applies the submit-time rules. Title, description and routing
// slugs block; everything else is advisory so drafts can be saved.
func Validate(it Item) Result {
	var res Result
	if utf8.RuneCountInString(it.Title) < MinTitleLen {
		res.fail("title", fmt.Sprintf("Title must be at least %d characters", MinTitleLen))
	}
	if utf8.RuneCountInString(it.Description) < MinDescriptionLen {
		res.fail("description", fmt.Sprintf("Description must be at least %d characters", MinDescriptionLen))
	}
	if it.Type.RequiresSlug() && it.Slug == "" {
		res.fail("slug", fmt.Sprintf("Slug is required for %s content", it.Type.Label()))
	}

	switch it.Type {
	case TypeBlogPost:
		if len(it.SEO.Keywords) == 0 {
			res.warn("No keywords added. Adding keywords helps readers find this post.")
		}
	case TypePageSection:
		if it.Placement == nil || (it.Placement.PageID == nil && it.Placement.SectionID == nil) {
			res.warn("No placement selected. Choose a page or section so this section renders somewhere.")
		}
	}

	switch d := it.Details.(type) {
	case TestimonialDetails:
		if d.Rating != nil && (*d.Rating < MinRating || *d.Rating > MaxRating) {
			res.warn(fmt.Sprintf("Rating %g is outside the usual %d-%d range", *d.Rating, MinRating, MaxRating))
		}
	case JobPostingDetails:
		if (d.SalaryMin != nil && *d.SalaryMin < 0) || (d.SalaryMax != nil && *d.SalaryMax < 0) {
			res.warn("Salary values should be positive numbers")
		}
		if d.SalaryMin != nil && d.SalaryMax != nil && *d.SalaryMin > *d.SalaryMax {
			res.warn("Minimum salary is greater than maximum salary")
		}
	}
	return res
}
