package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devpress/cmd/api/dto"
	"devpress/repositories"
)

// seedPosts 는 공개 글 셋과 예약 글, 초안을 적재한다.
func seedPosts(t *testing.T, svc *AdminPostService) {
	t.Helper()
	ctx := context.Background()

	posts := []dto.PostUpsertPayload{}

	a := ingestPayload("channels-deep-dive")
	a.Tags = []string{"go", "concurrency"}
	a.PublishedAt = strptr("2026-03-01T09:00:00Z")
	posts = append(posts, a)

	b := ingestPayload("testing-in-go")
	b.Tags = []string{"go", "testing"}
	b.PublishedAt = strptr("2026-02-01T09:00:00Z")
	posts = append(posts, b)

	c := ingestPayload("css-grid-basics")
	c.CategorySlug = "frontend"
	c.Tags = []string{"css"}
	c.PublishedAt = strptr("2026-01-01T09:00:00Z")
	posts = append(posts, c)

	draft := ingestPayload("unfinished")
	draft.Published = false
	posts = append(posts, draft)

	scheduled := ingestPayload("future-post")
	scheduled.ScheduledFor = strptr(time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339))
	posts = append(posts, scheduled)

	resp := svc.BulkUpsert(ctx, posts)
	require.Equal(t, 0, resp.Failed)
}

func TestListHidesDraftsAndScheduled(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))
	svc := NewPostService(gdb, 3)

	page, err := svc.List(context.Background(), ListPostsInput{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	for _, p := range page.Data {
		assert.NotEqual(t, "unfinished", p.Slug)
		assert.NotEqual(t, "future-post", p.Slug)
	}
	// 최신 공개 순.
	require.Len(t, page.Data, 3)
	assert.Equal(t, "channels-deep-dive", page.Data[0].Slug)
}

func TestListFiltersByCategoryAndTag(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))
	svc := NewPostService(gdb, 3)
	ctx := context.Background()

	byCategory, err := svc.List(ctx, ListPostsInput{Page: 1, PageSize: 10, Category: "frontend"})
	require.NoError(t, err)
	require.Len(t, byCategory.Data, 1)
	assert.Equal(t, "css-grid-basics", byCategory.Data[0].Slug)

	byTag, err := svc.List(ctx, ListPostsInput{Page: 1, PageSize: 10, Tag: "testing"})
	require.NoError(t, err)
	require.Len(t, byTag.Data, 1)
	assert.Equal(t, "testing-in-go", byTag.Data[0].Slug)
}

func TestGetBySlugRendersAndRelates(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))
	svc := NewPostService(gdb, 3)

	detail, err := svc.GetBySlug(context.Background(), "channels-deep-dive")
	require.NoError(t, err)
	assert.Contains(t, detail.HTML, "<h1")

	// 태그를 공유하는 글이 있으므로 tags 단계에서 뽑힌다.
	assert.Equal(t, "tags", detail.RelatedBy)
	require.NotEmpty(t, detail.Related)
	assert.Equal(t, "testing-in-go", detail.Related[0].Slug)
	for _, r := range detail.Related {
		assert.NotEqual(t, "channels-deep-dive", r.Slug)
	}
}

func TestGetBySlugHiddenPostIsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))
	svc := NewPostService(gdb, 3)
	ctx := context.Background()

	for _, slug := range []string{"unfinished", "future-post", "missing"} {
		_, err := svc.GetBySlug(ctx, slug)
		assert.ErrorIs(t, err, repositories.ErrNotFound, slug)
	}
}

func TestCategoryAndTagIndexes(t *testing.T) {
	gdb := newTestDB(t)
	seedPosts(t, NewAdminPostService(gdb))
	svc := NewPostService(gdb, 3)
	ctx := context.Background()

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Frontend", categories[0].Name)
	assert.Equal(t, int64(1), categories[0].PostCount)
	// 초안과 예약 전 글은 세지 않는다.
	assert.Equal(t, "Web Dev", categories[1].Name)
	assert.Equal(t, int64(2), categories[1].PostCount)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, tag := range tags {
		counts[tag.Slug] = tag.PostCount
	}
	assert.Equal(t, int64(1), counts["css"])
	assert.Equal(t, int64(2), counts["go"])
	assert.Equal(t, int64(1), counts["concurrency"])
}
