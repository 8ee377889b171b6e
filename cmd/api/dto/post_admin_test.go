package dto

import (
	"strings"
	"testing"
)

func validPayload() PostUpsertPayload {
	return PostUpsertPayload{
		Slug:         "getting-started-with-go",
		Title:        "Getting Started with Go",
		Description:  "A gentle introduction.",
		Content:      "# Hello\n\nSome content.",
		Author:       "Jamie",
		ReadingTime:  5,
		Published:    true,
		CategorySlug: "go",
		Tags:         []string{"go", "beginners"},
		Keywords:     []string{"golang"},
	}
}

func issueFor(issues []ValidationIssue, field string) *ValidationIssue {
	for i := range issues {
		if issues[i].Field == field {
			return &issues[i]
		}
	}
	return nil
}

func TestValidatePayloadOK(t *testing.T) {
	if issues := validPayload().Validate(); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestValidatePayload(t *testing.T) {
	manyTags := make([]string, 31)
	for i := range manyTags {
		manyTags[i] = "tag"
	}

	testCases := []struct {
		name      string
		mutate    func(*PostUpsertPayload)
		wantField string
	}{
		{
			name:      "slug with spaces and caps",
			mutate:    func(p *PostUpsertPayload) { p.Slug = "Invalid Slug!" },
			wantField: "slug",
		},
		{
			name:      "slug too long",
			mutate:    func(p *PostUpsertPayload) { p.Slug = strings.Repeat("a", 101) },
			wantField: "slug",
		},
		{
			name:      "empty title",
			mutate:    func(p *PostUpsertPayload) { p.Title = "" },
			wantField: "title",
		},
		{
			name:      "description too long",
			mutate:    func(p *PostUpsertPayload) { p.Description = strings.Repeat("x", 301) },
			wantField: "description",
		},
		{
			name:      "empty content",
			mutate:    func(p *PostUpsertPayload) { p.Content = "" },
			wantField: "content",
		},
		{
			name:      "fractional reading time",
			mutate:    func(p *PostUpsertPayload) { p.ReadingTime = 5.5 },
			wantField: "readingTime",
		},
		{
			name:      "reading time out of range",
			mutate:    func(p *PostUpsertPayload) { p.ReadingTime = 3601 },
			wantField: "readingTime",
		},
		{
			name: "bad publishedAt",
			mutate: func(p *PostUpsertPayload) {
				bad := "not-a-date"
				p.PublishedAt = &bad
			},
			wantField: "publishedAt",
		},
		{
			name:      "missing category slug",
			mutate:    func(p *PostUpsertPayload) { p.CategorySlug = "" },
			wantField: "categorySlug",
		},
		{
			name:      "too many tags",
			mutate:    func(p *PostUpsertPayload) { p.Tags = manyTags },
			wantField: "tags",
		},
		{
			name:      "empty tag entry",
			mutate:    func(p *PostUpsertPayload) { p.Tags = []string{""} },
			wantField: "tags[0]",
		},
		{
			name:      "featured image alt too long",
			mutate:    func(p *PostUpsertPayload) { p.FeaturedImageAlt = strings.Repeat("x", 161) },
			wantField: "featuredImageAlt",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			payload := validPayload()
			testCase.mutate(&payload)

			issues := payload.Validate()
			if issueFor(issues, testCase.wantField) == nil {
				t.Fatalf("expected an issue for field %q, got %+v", testCase.wantField, issues)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	for _, valid := range []string{"2026-01-15T09:30:00Z", "2026-01-15T09:30:00", "2026-01-15"} {
		if _, err := ParseDateTime(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseDateTime("15/01/2026"); err == nil {
		t.Fatal("expected parse failure for 15/01/2026")
	}
}
