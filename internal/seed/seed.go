// Package seed loads the demo site used by local setups and the seed command.
package seed

import (
	"context"
	"fmt"

	"github.com/lumenworks/sitecms/backend/go-services/internal/app"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/jobs"
	"github.com/lumenworks/sitecms/backend/go-services/internal/settings"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// Result counts what Run created.
type Result struct {
	Content int
	Jobs    int
	Skipped bool
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

// Run fills an empty store with demo content. A store that already holds
// content is left untouched.
func Run(ctx context.Context, a *app.App) (Result, error) {
	existing, err := a.Content.GetAllContent(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(existing) > 0 {
		logger.Infof("seed: %d content item(s) present, skipping", len(existing))
		return Result{Skipped: true}, nil
	}

	var res Result
	add := func(it content.Item) (content.Item, error) {
		saved, err := a.Content.AddContent(ctx, it)
		if err != nil {
			return content.Item{}, fmt.Errorf("seed %s %q: %w", it.Type, it.Title, err)
		}
		res.Content++
		return saved, nil
	}

	home, err := add(content.Item{Type: content.TypePage, Title: "Home", Slug: "home", Published: true, ShowInNavigation: true,
		Description: "Digital products, built carefully."})
	if err != nil {
		return res, err
	}
	if _, err := add(content.Item{Type: content.TypePage, Title: "About", Slug: "about", Published: true, ShowInNavigation: true,
		Description: "Who we are and how we work."}); err != nil {
		return res, err
	}
	hero, err := add(content.Item{Type: content.TypePageSection, Title: "Hero", Published: true,
		Content:   "<h1>We build software people enjoy using</h1>",
		Placement: &content.Placement{PageID: i64(home.ID), Position: content.PositionTop}})
	if err != nil {
		return res, err
	}
	seeded := []content.Item{
		{Type: content.TypePageSection, Title: "Highlights", Published: true,
			Placement: &content.Placement{PageID: i64(home.ID), SectionID: i64(hero.ID), Position: content.PositionAfter}},
		{Type: content.TypePageSection, Title: "Call to action", Published: true,
			Placement: &content.Placement{PageID: i64(home.ID), Position: content.PositionBottom}},
		{Type: content.TypeService, Title: "Web Development", Slug: "web-development", Published: true,
			Description: "Fast, accessible sites and web apps.", Details: content.ServiceDetails{Icon: "code"}},
		{Type: content.TypeService, Title: "Cloud Operations", Slug: "cloud-operations", Published: true,
			Description: "Infrastructure that stays up.", Details: content.ServiceDetails{Icon: "cloud"}},
		{Type: content.TypeTestimonial, Title: "Great partner", Published: true, Description: "They shipped on time and on budget.",
			Details: content.TestimonialDetails{Author: "Ana Ruiz", Role: "CTO", Company: "Acme", Rating: f64(5)}},
		{Type: content.TypeFAQ, Title: "How long does a project take?", Published: true,
			Details: content.FAQDetails{Answer: "Most engagements run between six and twelve weeks."}},
		{Type: content.TypeTeamMember, Title: "Sam Lee", Published: true,
			Details: content.TeamMemberDetails{Role: "Lead Engineer", Department: "Engineering", Responsibilities: []string{"Architecture", "Mentoring"}}},
		{Type: content.TypeCaseStudy, Title: "Retail platform rebuild", Published: true,
			Details: content.CaseStudyDetails{Client: "Acme", Duration: "4 months", Technologies: []string{"Go", "MongoDB", "Redis"}}},
		{Type: content.TypeBlogPost, Title: "Hello, world", Slug: "hello-world", Published: true,
			Content: "<p>Our first post.</p>"},
	}
	for _, it := range seeded {
		if _, err := add(it); err != nil {
			return res, err
		}
	}

	openings := []jobs.Opening{
		{Title: "Senior Go Engineer", Department: "Engineering", Location: "Remote", Type: jobs.Remote, Published: true,
			Description: "Build the services behind our client platforms.", Responsibilities: []string{"Design APIs", "Review code"},
			Requirements: []string{"5+ years of backend work"}, Salary: &jobs.Salary{Min: f64(90000), Max: f64(120000), Currency: "EUR"}},
		{Title: "Product Designer", Department: "Design", Location: "Lisbon", Type: jobs.FullTime},
	}
	for _, o := range openings {
		if _, err := a.Jobs.Create(ctx, o); err != nil {
			return res, fmt.Errorf("seed job %q: %w", o.Title, err)
		}
		res.Jobs++
	}

	st := settings.Defaults()
	st.Footer.CompanyName = "Lumen Works"
	st.Contact.Email = "hello@example.com"
	if _, err := a.Settings.Update(ctx, st); err != nil {
		return res, fmt.Errorf("seed settings: %w", err)
	}
	logger.Infof("seed: created %d content item(s) and %d job opening(s)", res.Content, res.Jobs)
	return res, nil
}
