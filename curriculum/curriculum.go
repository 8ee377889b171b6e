// Package curriculum orders a topic's lessons and sections for display and
// computes prev/next navigation between lessons.
//
// 모든 함수는 적재가 끝난 모델 값만 받는 순수 함수다. 저장소 쿼리 순서에
// 의존하지 않도록 여기서 직접 정렬한다(삽입 순서는 보장되지 않는다).
package curriculum

import (
	"errors"
	"sort"

	"devpress/models"
)

// ErrLessonNotFound is returned by Neighbors when the lesson is not part of
// the topic's published sequence.
var ErrLessonNotFound = errors.New("lesson not found")

// ItemKind discriminates outline entries.
type ItemKind string

const (
	KindLesson  ItemKind = "lesson"
	KindSection ItemKind = "section"
)

// OutlineItem is one entry of a topic's top-level display sequence: either a
// standalone lesson or a section header. Section lessons ride along already
// sorted; the UI decides whether to show them expanded.
type OutlineItem struct {
	Kind    ItemKind        `json:"kind"`
	Lesson  *models.Lesson  `json:"lesson,omitempty"`
	Section *models.Section `json:"section,omitempty"`
	Lessons []models.Lesson `json:"lessons,omitempty"`
}

// BuildOutline merges a topic's published standalone lessons and published
// sections into a single sequence ordered by the shared `order` sort key,
// ties broken by slug string comparison. Sections are not expanded into the
// top-level merge.
func BuildOutline(topic models.Topic) []OutlineItem {
	items := make([]OutlineItem, 0, len(topic.Lessons)+len(topic.Sections))

	for i := range topic.Lessons {
		l := topic.Lessons[i]
		if !l.Published {
			continue
		}
		items = append(items, OutlineItem{Kind: KindLesson, Lesson: &l})
	}
	for i := range topic.Sections {
		s := topic.Sections[i]
		if !s.Published {
			continue
		}
		items = append(items, OutlineItem{
			Kind:    KindSection,
			Section: &s,
			Lessons: sortedPublished(s.Lessons),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		oi, ki := sortKey(items[i])
		oj, kj := sortKey(items[j])
		if oi != oj {
			return oi < oj
		}
		return ki < kj
	})
	return items
}

// Flatten returns the full ordered lesson traversal of a topic: the outline
// order with sections expanded in place, published lessons only. Prev/next
// navigation walks this sequence, so it always matches the displayed
// outline.
func Flatten(topic models.Topic) []models.Lesson {
	var out []models.Lesson
	for _, item := range BuildOutline(topic) {
		switch item.Kind {
		case KindLesson:
			out = append(out, *item.Lesson)
		case KindSection:
			out = append(out, item.Lessons...)
		}
	}
	return out
}

// Neighbors returns the previous and next lessons around lessonSlug in the
// topic's flattened sequence. Either may be nil at the edges. A lesson that
// is unpublished, or nested under an unpublished section, is not part of the
// sequence and yields ErrLessonNotFound.
func Neighbors(topic models.Topic, lessonSlug string) (prev, next *models.Lesson, err error) {
	seq := Flatten(topic)
	idx := -1
	for i := range seq {
		if seq[i].Slug == lessonSlug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, ErrLessonNotFound
	}

	if idx > 0 {
		prev = &seq[idx-1]
	}
	if idx < len(seq)-1 {
		next = &seq[idx+1]
	}
	return prev, next, nil
}

func sortKey(item OutlineItem) (int, string) {
	if item.Kind == KindSection {
		return item.Section.Order, item.Section.Slug
	}
	return item.Lesson.Order, item.Lesson.Slug
}

func sortedPublished(lessons []models.Lesson) []models.Lesson {
	out := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.Published {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
