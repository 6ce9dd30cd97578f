package form

import "github.com/lumenworks/sitecms/backend/go-services/internal/content"

// SubForm is the type-specific part of the form. Exactly one variant is
// mounted for the types that own details, none for the rest.
type SubForm interface {
	Type() content.Type
	// Tab is the label of the extra tab the variant adds.
	Tab() string
	details() content.Details
}

type TestimonialForm struct {
	Author  string
	Role    string
	Company string
	// Rating is kept as typed; it becomes a number only on submit.
	Rating string
}

type FAQForm struct {
	Answer string
}

type TeamMemberForm struct {
	Role             string
	Department       string
	Responsibilities ListField
}

type CaseStudyForm struct {
	Client       string
	Duration     string
	Technologies ListField
	Challenge    string
	Solution     string
	Results      string
}

type JobPostingForm struct {
	Location         string
	Department       string
	Responsibilities ListField
	Requirements     ListField
	Benefits         ListField
	ApplyURL         string
	SalaryMin        string
	SalaryMax        string
}

// ServiceForm holds the icon picked by the icon selector.
type ServiceForm struct {
	Icon string
}

func (*TestimonialForm) Type() content.Type { return content.TypeTestimonial }
func (*FAQForm) Type() content.Type         { return content.TypeFAQ }
func (*TeamMemberForm) Type() content.Type  { return content.TypeTeamMember }
func (*CaseStudyForm) Type() content.Type   { return content.TypeCaseStudy }
func (*JobPostingForm) Type() content.Type  { return content.TypeJobPosting }
func (*ServiceForm) Type() content.Type     { return content.TypeService }

func (f *TestimonialForm) Tab() string { return f.Type().Label() }
func (f *FAQForm) Tab() string         { return f.Type().Label() }
func (f *TeamMemberForm) Tab() string  { return f.Type().Label() }
func (f *CaseStudyForm) Tab() string   { return f.Type().Label() }
func (f *JobPostingForm) Tab() string  { return f.Type().Label() }
func (f *ServiceForm) Tab() string     { return "Icon" }

func (f *TestimonialForm) details() content.Details {
	return content.TestimonialDetails{
		Author:  f.Author,
		Role:    f.Role,
		Company: f.Company,
		Rating:  content.ParseNumber(f.Rating),
	}
}

func (f *FAQForm) details() content.Details { return content.FAQDetails{Answer: f.Answer} }

func (f *TeamMemberForm) details() content.Details {
	return content.TeamMemberDetails{
		Role:             f.Role,
		Department:       f.Department,
		Responsibilities: f.Responsibilities.Items(),
	}
}

func (f *CaseStudyForm) details() content.Details {
	return content.CaseStudyDetails{
		Client:       f.Client,
		Duration:     f.Duration,
		Technologies: f.Technologies.Items(),
		Challenge:    f.Challenge,
		Solution:     f.Solution,
		Results:      f.Results,
	}
}

func (f *JobPostingForm) details() content.Details {
	return content.JobPostingDetails{
		Location:         f.Location,
		Department:       f.Department,
		Responsibilities: f.Responsibilities.Items(),
		Requirements:     f.Requirements.Items(),
		Benefits:         f.Benefits.Items(),
		ApplyURL:         f.ApplyURL,
		SalaryMin:        content.ParseNumber(f.SalaryMin),
		SalaryMax:        content.ParseNumber(f.SalaryMax),
	}
}

func (f *ServiceForm) details() content.Details { return content.ServiceDetails{Icon: f.Icon} }

// mountSubForm builds the variant for t, prefilled from d when d belongs to t.
func mountSubForm(t content.Type, d content.Details) SubForm {
	switch t {
	case content.TypeTestimonial:
		f := &TestimonialForm{}
		if v, ok := d.(content.TestimonialDetails); ok {
			f.Author, f.Role, f.Company = v.Author, v.Role, v.Company
			f.Rating = content.FormatNumber(v.Rating)
		}
		return f
	case content.TypeFAQ:
		f := &FAQForm{}
		if v, ok := d.(content.FAQDetails); ok {
			f.Answer = v.Answer
		}
		return f
	case content.TypeTeamMember:
		f := &TeamMemberForm{Responsibilities: NewListField(content.SepNewline)}
		if v, ok := d.(content.TeamMemberDetails); ok {
			f.Role, f.Department = v.Role, v.Department
			f.Responsibilities.Set(v.Responsibilities)
		}
		return f
	case content.TypeCaseStudy:
		f := &CaseStudyForm{Technologies: NewListField(content.SepComma)}
		if v, ok := d.(content.CaseStudyDetails); ok {
			f.Client, f.Duration = v.Client, v.Duration
			f.Technologies.Set(v.Technologies)
			f.Challenge, f.Solution, f.Results = v.Challenge, v.Solution, v.Results
		}
		return f
	case content.TypeJobPosting:
		f := &JobPostingForm{
			Responsibilities: NewListField(content.SepNewline),
			Requirements:     NewListField(content.SepNewline),
			Benefits:         NewListField(content.SepNewline),
		}
		if v, ok := d.(content.JobPostingDetails); ok {
			f.Location, f.Department, f.ApplyURL = v.Location, v.Department, v.ApplyURL
			f.Responsibilities.Set(v.Responsibilities)
			f.Requirements.Set(v.Requirements)
			f.Benefits.Set(v.Benefits)
			f.SalaryMin = content.FormatNumber(v.SalaryMin)
			f.SalaryMax = content.FormatNumber(v.SalaryMax)
		}
		return f
	case content.TypeService:
		f := &ServiceForm{}
		if v, ok := d.(content.ServiceDetails); ok {
			f.Icon = v.Icon
		}
		return f
	}
	return nil
}
