package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "my-great-post", Slugify("My Great Post!"))
	require.Equal(t, "hello-world", Slugify("  Hello,   World  "))
	require.Equal(t, "ai-tools-2025", Slugify("AI Tools -- 2025"))
	require.Equal(t, "hello-world", Slugify("Hello - World "))
	require.Equal(t, "", Slugify("!!!"))
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"React", "Node.js", "Vue"}, SplitList("React, Node.js,  Vue ", SepComma))
	require.Equal(t, []string{"Ship features", "Review code"}, SplitList("Ship features\r\n\n  Review code\n", SepNewline))
	require.Nil(t, SplitList(" , ,", SepComma))
	require.Equal(t, "React, Vue", JoinList([]string{"React", "Vue"}, SepComma))
}

func TestDedupKeywords(t *testing.T) {
	require.Equal(t, []string{"go", "cms", "Web"}, DedupKeywords([]string{" go", "cms", "GO", "", "Web", "web "}))
}

func TestParseNumber(t *testing.T) {
	require.Nil(t, ParseNumber(""))
	require.Nil(t, ParseNumber("   "))
	require.Nil(t, ParseNumber("abc"))
	n := ParseNumber("7")
	require.NotNil(t, n)
	require.Equal(t, 7.0, *n)
	require.Equal(t, "7", FormatNumber(n))

	require.Nil(t, ParseID("0"))
	require.Nil(t, ParseID("x"))
	require.Equal(t, int64(12), *ParseID("12"))
}

func TestIsVideoURL(t *testing.T) {
	require.True(t, IsVideoURL("https://youtu.be/abc123"))
	require.True(t, IsVideoURL("https://www.youtube.com/watch?v=abc"))
	require.False(t, IsVideoURL("https://vimeo.com/123"))
}

func TestSanitizeHTML(t *testing.T) {
	out := SanitizeHTML(`<p>hi</p><script>alert(1)</script>`)
	require.Contains(t, out, "<p>hi</p>")
	require.NotContains(t, out, "script")
}

func validItem(tp Type) Item {
	return Item{Type: tp, Title: "Valid title", Description: "A long enough description", Slug: "valid", Published: true}
}

func TestValidate_AllTypesAcceptValidInput(t *testing.T) {
	for _, tp := range Types() {
		it := validItem(tp)
		it.SEO.Keywords = []string{"k"}
		res := Validate(it)
		require.False(t, res.Blocked(), "type %s: %v", tp, res.Errors)
	}
}

func TestValidate_BlockingRules(t *testing.T) {
	it := Item{Type: TypeFAQ, Title: "ab", Description: "short"}
	res := Validate(it)
	require.True(t, res.Blocked())
	require.Contains(t, res.Errors, "title")
	require.Contains(t, res.Errors, "description")
	require.NotContains(t, res.Errors, "slug")

	for _, tp := range []Type{TypePage, TypeBlogPost, TypeService, TypePortfolio} {
		it := validItem(tp)
		it.Slug = ""
		res := Validate(it)
		require.True(t, res.Blocked(), tp)
		require.Contains(t, res.Errors, "slug")
	}
}

func TestValidate_Advisory(t *testing.T) {
	res := Validate(validItem(TypeBlogPost))
	require.False(t, res.Blocked())
	require.Len(t, res.Warnings, 1)

	res = Validate(validItem(TypePageSection))
	require.False(t, res.Blocked())
	require.Len(t, res.Warnings, 1)

	pid := int64(3)
	sec := validItem(TypePageSection)
	sec.Placement = &Placement{PageID: &pid}
	require.Empty(t, Validate(sec).Warnings)

	rating := 7.0
	tm := validItem(TypeTestimonial)
	tm.Details = TestimonialDetails{Author: "Ana", Rating: &rating}
	res = Validate(tm)
	require.False(t, res.Blocked())
	require.Len(t, res.Warnings, 1)

	lo, hi := 90000.0, 50000.0
	job := validItem(TypeJobPosting)
	job.Details = JobPostingDetails{SalaryMin: &lo, SalaryMax: &hi}
	require.Len(t, Validate(job).Warnings, 1)
}

func TestRecord_FlattensDetailsAndOmitsOthers(t *testing.T) {
	rating := 5.0
	it := Item{
		ID: 4, Type: TypeTestimonial, Title: "Great", Description: "Loved working with them", Published: true,
		Details: TestimonialDetails{Author: "Ana", Role: "CTO", Company: "Acme", Rating: &rating},
	}
	b, err := json.Marshal(it)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, "Ana", m["author"])
	require.Equal(t, 5.0, m["rating"])
	require.NotContains(t, m, "technologies")
	require.NotContains(t, m, "placement")

	var back Item
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, it.Details, back.Details)
}

func TestFromRecord_DropsFieldsOfOtherTypes(t *testing.T) {
	pid := int64(1)
	it, err := FromRecord(Record{
		Type: TypePage, Title: "About", Answer: "stray", Technologies: []string{"Go"},
		Placement: &Placement{PageID: &pid}, ShowInNavigation: true,
	})
	require.NoError(t, err)
	require.Nil(t, it.Details)
	require.Nil(t, it.Placement)
	require.True(t, it.ShowInNavigation)
	require.True(t, it.Published, "missing published defaults to true")
	require.Empty(t, it.Record().Answer)

	_, err = FromRecord(Record{Type: "newsletter"})
	require.Error(t, err)
}

func TestCheckDetails(t *testing.T) {
	it := validItem(TypeFAQ)
	it.Details = CaseStudyDetails{Client: "x"}
	require.ErrorIs(t, it.CheckDetails(), ErrDetailsMismatch)

	it.Details = FAQDetails{Answer: "yes"}
	require.NoError(t, it.CheckDetails())

	pid := int64(1)
	it.Placement = &Placement{PageID: &pid}
	require.ErrorIs(t, it.CheckDetails(), ErrDetailsMismatch)
}

func TestMerge_KeepsIDAndOverlaysFields(t *testing.T) {
	it := validItem(TypeCaseStudy)
	it.ID = 9
	it.Details = CaseStudyDetails{Client: "Acme", Technologies: []string{"Go"}}

	out, err := Merge(it, Partial{"id": 100, "title": "New title", "technologies": []any{"Go", "Redis"}, "published": false})
	require.NoError(t, err)
	require.Equal(t, int64(9), out.ID)
	require.Equal(t, "New title", out.Title)
	require.False(t, out.Published)
	d := out.Details.(CaseStudyDetails)
	require.Equal(t, "Acme", d.Client)
	require.Equal(t, []string{"Go", "Redis"}, d.Technologies)
}

func TestListOptions_Apply(t *testing.T) {
	now := time.Now()
	items := []Item{
		{ID: 1, Type: TypeBlogPost, Title: "Zeta", Published: true, LastUpdated: now.Add(-time.Hour)},
		{ID: 2, Type: TypeBlogPost, Title: "alpha", Published: false, LastUpdated: now},
		{ID: 3, Type: TypeFAQ, Title: "Beta question", Published: true, LastUpdated: now.Add(-2 * time.Hour)},
	}
	yes := true

	got := ListOptions{Type: TypeBlogPost, Sort: SortByTitle}.Apply(items)
	require.Equal(t, []int64{2, 1}, ids(got))

	got = ListOptions{Published: &yes, Sort: SortByLastUpdated, Desc: true}.Apply(items)
	require.Equal(t, []int64{1, 3}, ids(got))

	got = ListOptions{Search: "question"}.Apply(items)
	require.Equal(t, []int64{3}, ids(got))

	f, desc := ParseSort("-lastUpdated")
	require.Equal(t, SortByLastUpdated, f)
	require.True(t, desc)
}

func ids(items []Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
