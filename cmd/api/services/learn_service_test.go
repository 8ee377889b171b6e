package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devpress/cmd/api/dto"
	"devpress/repositories"
)

func topicPayload() dto.TopicUpsertPayload {
	return dto.TopicUpsertPayload{
		Title:       "Go Basics",
		Description: "From zero to a working program.",
		Icon:        "go",
		Order:       1,
		Published:   true,
		Lessons: []dto.LessonPayload{
			{Slug: "intro", Title: "Introduction", Content: "# Hello", Order: 1, Published: true, Duration: intptr(5)},
			{Slug: "wrap-up", Title: "Wrap Up", Content: "done", Order: 9, Published: true},
		},
		Sections: []dto.SectionPayload{
			{
				Slug: "syntax", Title: "Syntax", Order: 2, Published: true,
				Lessons: []dto.LessonPayload{
					{Slug: "variables", Title: "Variables", Content: "vars", Order: 1, Published: true},
					{Slug: "loops", Title: "Loops", Content: "loops", Order: 2, Published: true},
				},
			},
		},
	}
}

func TestUpsertTopicCreatesTree(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewLearnService(gdb)
	ctx := context.Background()

	created, err := svc.UpsertTopic(ctx, "go-basics", topicPayload())
	require.NoError(t, err)
	assert.True(t, created)

	topics, err := svc.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "go-basics", topics[0].Slug)
	assert.Equal(t, 4, topics[0].LessonCount)
}

func TestUpsertTopicReplacesStaleRows(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewLearnService(gdb)
	ctx := context.Background()

	_, err := svc.UpsertTopic(ctx, "go-basics", topicPayload())
	require.NoError(t, err)

	// wrap-up 과 syntax 섹션을 빼고 다시 제출하면 해당 행이 사라져야 한다.
	next := topicPayload()
	next.Lessons = next.Lessons[:1]
	next.Sections = nil
	created, err := svc.UpsertTopic(ctx, "go-basics", next)
	require.NoError(t, err)
	assert.False(t, created)

	detail, err := svc.GetTopic(ctx, "go-basics")
	require.NoError(t, err)
	require.Len(t, detail.Outline, 1)
	assert.Equal(t, "lesson", detail.Outline[0].Kind)
	assert.Equal(t, "intro", detail.Outline[0].Lesson.Slug)
}

func TestGetTopicOutlineOrder(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewLearnService(gdb)
	ctx := context.Background()

	_, err := svc.UpsertTopic(ctx, "go-basics", topicPayload())
	require.NoError(t, err)

	detail, err := svc.GetTopic(ctx, "go-basics")
	require.NoError(t, err)
	require.Len(t, detail.Outline, 3)
	assert.Equal(t, "intro", detail.Outline[0].Lesson.Slug)
	assert.Equal(t, "section", detail.Outline[1].Kind)
	assert.Equal(t, "syntax", detail.Outline[1].Section.Slug)
	require.Len(t, detail.Outline[1].Lessons, 2)
	assert.Equal(t, "wrap-up", detail.Outline[2].Lesson.Slug)
}

func TestGetLessonNavigationCrossesSections(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewLearnService(gdb)
	ctx := context.Background()

	_, err := svc.UpsertTopic(ctx, "go-basics", topicPayload())
	require.NoError(t, err)

	lesson, err := svc.GetLesson(ctx, "go-basics", "loops")
	require.NoError(t, err)
	assert.Contains(t, lesson.HTML, "loops")
	require.NotNil(t, lesson.Prev)
	assert.Equal(t, "variables", lesson.Prev.Slug)
	assert.Equal(t, "syntax", lesson.Prev.SectionSlug)
	require.NotNil(t, lesson.Next)
	assert.Equal(t, "wrap-up", lesson.Next.Slug)
	assert.Empty(t, lesson.Next.SectionSlug)
}

func TestGetLessonEndpointsHaveNilNeighbors(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewLearnService(gdb)
	ctx := context.Background()

	_, err := svc.UpsertTopic(ctx, "go-basics", topicPayload())
	require.NoError(t, err)

	first, err := svc.GetLesson(ctx, "go-basics", "intro")
	require.NoError(t, err)
	assert.Nil(t, first.Prev)

	last, err := svc.GetLesson(ctx, "go-basics", "wrap-up")
	require.NoError(t, err)
	assert.Nil(t, last.Next)
}

func TestUnpublishedTopicIsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewLearnService(gdb)
	ctx := context.Background()

	hidden := topicPayload()
	hidden.Published = false
	_, err := svc.UpsertTopic(ctx, "go-basics", hidden)
	require.NoError(t, err)

	_, err = svc.GetTopic(ctx, "go-basics")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.GetLesson(ctx, "go-basics", "intro")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	topics, err := svc.ListTopics(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)
}
