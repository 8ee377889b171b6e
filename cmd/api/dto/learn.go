package dto

import (
	"fmt"
	"unicode/utf8"

	"devpress/curriculum"
	"devpress/models"
)

// TopicDTO is the public listing representation of a tutorial topic.
type TopicDTO struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	LessonCount int    `json:"lesson_count"`
}

// LessonLinkDTO is a minimal lesson reference used for outline entries and
// prev/next navigation.
type LessonLinkDTO struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    *int   `json:"duration"`
	SectionSlug string `json:"section_slug,omitempty"`
}

// OutlineItemDTO mirrors curriculum.OutlineItem for the public API.
type OutlineItemDTO struct {
	Kind    string          `json:"kind" example:"section"`
	Lesson  *LessonLinkDTO  `json:"lesson,omitempty"`
	Section *SectionDTO     `json:"section,omitempty"`
	Lessons []LessonLinkDTO `json:"lessons,omitempty"`
}

// SectionDTO is the public section header representation.
type SectionDTO struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// TopicDetailDTO is a topic with its merged display outline.
type TopicDetailDTO struct {
	TopicDTO
	Outline []OutlineItemDTO `json:"outline"`
}

// LessonDetailDTO is a rendered lesson page with its navigation neighbors.
type LessonDetailDTO struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    *int           `json:"duration"`
	HTML        string         `json:"html"`
	TopicSlug   string         `json:"topic_slug"`
	Prev        *LessonLinkDTO `json:"prev"`
	Next        *LessonLinkDTO `json:"next"`
}

func MapLessonLink(l models.Lesson, sectionSlug string) LessonLinkDTO {
	return LessonLinkDTO{
		Slug:        l.Slug,
		Title:       l.Title,
		Description: l.Description,
		Duration:    l.Duration,
		SectionSlug: sectionSlug,
	}
}

func MapTopic(t models.Topic, lessonCount int) TopicDTO {
	return TopicDTO{
		Slug:        t.Slug,
		Title:       t.Title,
		Description: t.Description,
		Icon:        t.Icon,
		Order:       t.Order,
		LessonCount: lessonCount,
	}
}

// MapOutline converts a curriculum outline into its API shape.
func MapOutline(items []curriculum.OutlineItem) []OutlineItemDTO {
	out := make([]OutlineItemDTO, 0, len(items))
	for _, item := range items {
		d := OutlineItemDTO{Kind: string(item.Kind)}
		switch item.Kind {
		case curriculum.KindLesson:
			link := MapLessonLink(*item.Lesson, "")
			d.Lesson = &link
		case curriculum.KindSection:
			d.Section = &SectionDTO{
				Slug:        item.Section.Slug,
				Title:       item.Section.Title,
				Description: item.Section.Description,
				Icon:        item.Section.Icon,
			}
			links := make([]LessonLinkDTO, 0, len(item.Lessons))
			for _, l := range item.Lessons {
				links = append(links, MapLessonLink(l, item.Section.Slug))
			}
			d.Lessons = links
		}
		out = append(out, d)
	}
	return out
}

// -------------------- Learn ingestion payloads --------------------

// LessonPayload is one lesson of a topic ingestion request.
type LessonPayload struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Duration    *int   `json:"duration"`
	Order       int    `json:"order"`
	Published   bool   `json:"published"`
}

// SectionPayload is one section (with nested lessons) of a topic ingestion
// request.
type SectionPayload struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Order       int             `json:"order"`
	Published   bool            `json:"published"`
	Lessons     []LessonPayload `json:"lessons"`
}

// TopicUpsertPayload is the PUT body of the learn ingestion endpoint.
// 토픽 슬러그는 URL 경로에서 오므로 본문에는 없다.
type TopicUpsertPayload struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Order       int              `json:"order"`
	Published   bool             `json:"published"`
	Lessons     []LessonPayload  `json:"lessons"`
	Sections    []SectionPayload `json:"sections"`
}

// Validate checks the topic tree against the ingestion schema.
func (p TopicUpsertPayload) Validate() []ValidationIssue {
	var issues []ValidationIssue
	add := func(field, message string) {
		issues = append(issues, ValidationIssue{Field: field, Message: message})
	}

	if n := utf8.RuneCountInString(p.Title); n < 1 || n > 150 {
		add("title", "must be 1-150 characters")
	}
	if utf8.RuneCountInString(p.Description) > 300 {
		add("description", "must be at most 300 characters")
	}

	for i, l := range p.Lessons {
		validateLesson(fmt.Sprintf("lessons[%d]", i), l, add)
	}
	for i, s := range p.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		if !slugPattern.MatchString(s.Slug) || utf8.RuneCountInString(s.Slug) > 100 {
			add(prefix+".slug", "must match ^[a-z0-9-]+$ and be 1-100 characters")
		}
		if n := utf8.RuneCountInString(s.Title); n < 1 || n > 150 {
			add(prefix+".title", "must be 1-150 characters")
		}
		for j, l := range s.Lessons {
			validateLesson(fmt.Sprintf("%s.lessons[%d]", prefix, j), l, add)
		}
	}
	return issues
}

func validateLesson(prefix string, l LessonPayload, add func(field, message string)) {
	if !slugPattern.MatchString(l.Slug) || utf8.RuneCountInString(l.Slug) > 100 {
		add(prefix+".slug", "must match ^[a-z0-9-]+$ and be 1-100 characters")
	}
	if n := utf8.RuneCountInString(l.Title); n < 1 || n > 150 {
		add(prefix+".title", "must be 1-150 characters")
	}
	if l.Content == "" {
		add(prefix+".content", "must not be empty")
	}
	if l.Duration != nil && (*l.Duration < 0 || *l.Duration > 3600) {
		add(prefix+".duration", "must be between 0 and 3600")
	}
}
