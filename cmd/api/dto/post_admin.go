package dto

import (
	"fmt"
	"math"
	"regexp"
	"time"
	"unicode/utf8"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// PostUpsertPayload is one item of the bulk ingestion body (and the PUT body
// of the single-resource endpoint).
//
// ReadingTime 은 의도적으로 float64 로 받는다. JSON 숫자를 일단 수용한 뒤
// Validate 에서 정수 여부를 필드 단위 이슈로 보고하기 위해서다.
type PostUpsertPayload struct {
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt"`
	Author           string   `json:"author"`
	ReadingTime      float64  `json:"readingTime"`
	Published        bool     `json:"published"`
	Featured         bool     `json:"featured"`
	PublishedAt      *string  `json:"publishedAt"`
	ScheduledFor     *string  `json:"scheduledFor"`
	CategorySlug     string   `json:"categorySlug"`
	Tags             []string `json:"tags"`
	Keywords         []string `json:"keywords"`
	FeaturedImage    string   `json:"featuredImage"`
	FeaturedImageAlt string   `json:"featuredImageAlt"`
}

// Validate checks the payload against the ingestion schema and returns one
// issue per violated rule. An empty result means the payload is acceptable.
func (p PostUpsertPayload) Validate() []ValidationIssue {
	var issues []ValidationIssue
	add := func(field, message string) {
		issues = append(issues, ValidationIssue{Field: field, Message: message})
	}

	if n := utf8.RuneCountInString(p.Slug); n < 1 || n > 100 {
		add("slug", "must be 1-100 characters")
	} else if !slugPattern.MatchString(p.Slug) {
		add("slug", "must match ^[a-z0-9-]+$")
	}

	if n := utf8.RuneCountInString(p.Title); n < 1 || n > 150 {
		add("title", "must be 1-150 characters")
	}
	if n := utf8.RuneCountInString(p.Description); n < 1 || n > 300 {
		add("description", "must be 1-300 characters")
	}
	if p.Content == "" {
		add("content", "must not be empty")
	}
	if utf8.RuneCountInString(p.Excerpt) > 300 {
		add("excerpt", "must be at most 300 characters")
	}
	if n := utf8.RuneCountInString(p.Author); n < 1 || n > 100 {
		add("author", "must be 1-100 characters")
	}

	if p.ReadingTime != math.Trunc(p.ReadingTime) {
		add("readingTime", "must be an integer")
	} else if p.ReadingTime < 0 || p.ReadingTime > 3600 {
		add("readingTime", "must be between 0 and 3600")
	}

	if p.PublishedAt != nil {
		if _, err := ParseDateTime(*p.PublishedAt); err != nil {
			add("publishedAt", "must be a valid date-time string")
		}
	}
	if p.ScheduledFor != nil {
		if _, err := ParseDateTime(*p.ScheduledFor); err != nil {
			add("scheduledFor", "must be a valid date-time string")
		}
	}

	if n := utf8.RuneCountInString(p.CategorySlug); n < 1 || n > 60 {
		add("categorySlug", "must be 1-60 characters")
	}

	if len(p.Tags) > 30 {
		add("tags", "must have at most 30 items")
	}
	for i, tag := range p.Tags {
		if n := utf8.RuneCountInString(tag); n < 1 || n > 60 {
			add(fmt.Sprintf("tags[%d]", i), "must be 1-60 characters")
		}
	}

	if len(p.Keywords) > 40 {
		add("keywords", "must have at most 40 items")
	}
	for i, kw := range p.Keywords {
		if n := utf8.RuneCountInString(kw); n < 1 || n > 40 {
			add(fmt.Sprintf("keywords[%d]", i), "must be 1-40 characters")
		}
	}

	if utf8.RuneCountInString(p.FeaturedImageAlt) > 160 {
		add("featuredImageAlt", "must be at most 160 characters")
	}

	return issues
}

// ParseDateTime 은 적재 페이로드의 날짜 문자열을 파싱한다.
// RFC3339 를 우선하고, 날짜만 오는 경우도 허용한다.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// BulkItemResult is the per-slug outcome of one bulk ingestion item.
type BulkItemResult struct {
	Slug   string `json:"slug"`
	Status string `json:"status" example:"created"`
	Error  string `json:"error,omitempty"`
}

// BulkUpsertResponseDTO aggregates a whole bulk ingestion run.
type BulkUpsertResponseDTO struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Failed  int              `json:"failed"`
	Total   int              `json:"total"`
	Results []BulkItemResult `json:"results"`
}

// Bulk item statuses.
const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusFailed  = "failed"
)
