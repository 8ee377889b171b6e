package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devpress/cmd/api/dto"
	"devpress/models"
)

func ingestPayload(slug string) dto.PostUpsertPayload {
	return dto.PostUpsertPayload{
		Slug:         slug,
		Title:        "Understanding Goroutines",
		Description:  "A walk through Go's concurrency primitives.",
		Content:      "# Goroutines\n\nSome body text about goroutines.",
		Author:       "Jane Doe",
		ReadingTime:  4,
		Published:    true,
		CategorySlug: "web-dev",
		Tags:         []string{"go", "concurrency"},
		Keywords:     []string{"goroutine"},
	}
}

func TestBulkUpsertCreatesThenUpdates(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	first := svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 0, first.Updated)
	assert.Equal(t, 0, first.Failed)
	require.Len(t, first.Results, 1)
	assert.Equal(t, dto.StatusCreated, first.Results[0].Status)

	// 같은 페이로드 재적재는 새 행을 만들지 않는다.
	second := svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)

	var count int64
	require.NoError(t, gdb.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBulkUpsertAutoCreatesCategoryAndTags(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)

	resp := svc.BulkUpsert(context.Background(), []dto.PostUpsertPayload{ingestPayload("goroutines")})
	require.Equal(t, 1, resp.Created)

	var category models.Category
	require.NoError(t, gdb.Where("slug = ?", "web-dev").First(&category).Error)
	assert.Equal(t, "Web Dev", category.Name)

	var tags []models.Tag
	require.NoError(t, gdb.Order("slug ASC").Find(&tags).Error)
	require.Len(t, tags, 2)
	assert.Equal(t, "Concurrency", tags[0].Name)
	assert.Equal(t, "Go", tags[1].Name)
}

func TestBulkUpsertPartialFailure(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)

	bad := ingestPayload("Bad Slug!")
	good := ingestPayload("good-post")
	resp := svc.BulkUpsert(context.Background(), []dto.PostUpsertPayload{bad, good})

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, dto.StatusFailed, resp.Results[0].Status)
	assert.Contains(t, resp.Results[0].Error, "slug")
	assert.Equal(t, dto.StatusCreated, resp.Results[1].Status)
}

func TestBulkUpsertReplacesTags(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})

	next := ingestPayload("goroutines")
	next.Tags = []string{"channels"}
	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{next})

	post, err := svc.Get(ctx, "goroutines")
	require.NoError(t, err)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "channels", post.Tags[0].Slug)

	// 떼어낸 태그 행 자체는 남는다.
	var tagCount int64
	require.NoError(t, gdb.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(3), tagCount)
}

func TestBulkUpsertPublishedAtRules(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	explicit := ingestPayload("with-date")
	explicit.PublishedAt = strptr("2026-01-15T09:00:00Z")
	draft := ingestPayload("draft-post")
	draft.Published = false
	auto := ingestPayload("auto-date")

	resp := svc.BulkUpsert(ctx, []dto.PostUpsertPayload{explicit, draft, auto})
	require.Equal(t, 3, resp.Created)

	withDate, err := svc.Get(ctx, "with-date")
	require.NoError(t, err)
	require.NotNil(t, withDate.PublishedAt)
	assert.Equal(t, 2026, withDate.PublishedAt.Year())

	draftPost, err := svc.Get(ctx, "draft-post")
	require.NoError(t, err)
	assert.Nil(t, draftPost.PublishedAt)

	autoPost, err := svc.Get(ctx, "auto-date")
	require.NoError(t, err)
	assert.NotNil(t, autoPost.PublishedAt)
}

func TestBulkUpsertRestampsPublishedAtOnUpdate(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})
	first, err := svc.Get(ctx, "goroutines")
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)

	// 명시적 publishedAt 없이 재적재하면 적재 시각으로 다시 찍힌다.
	time.Sleep(20 * time.Millisecond)
	resp := svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})
	require.Equal(t, 1, resp.Updated)

	second, err := svc.Get(ctx, "goroutines")
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.True(t, second.PublishedAt.After(*first.PublishedAt))

	// 명시적 값을 주면 그 값이 이긴다.
	explicit := ingestPayload("goroutines")
	explicit.PublishedAt = strptr("2026-01-15T09:00:00Z")
	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{explicit})
	third, err := svc.Get(ctx, "goroutines")
	require.NoError(t, err)
	require.NotNil(t, third.PublishedAt)
	assert.Equal(t, 2026, third.PublishedAt.Year())
	assert.Equal(t, 1, int(third.PublishedAt.Month()))
}

func TestBulkUpsertFillsDerivedFields(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	payload := ingestPayload("derived")
	payload.Excerpt = ""
	payload.ReadingTime = 0
	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{payload})

	post, err := svc.Get(ctx, "derived")
	require.NoError(t, err)
	assert.NotEmpty(t, post.Excerpt)
	assert.GreaterOrEqual(t, post.ReadingTime, 1)
}

func TestDeleteKeepsTagAndCategoryRows(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})
	require.NoError(t, svc.Delete(ctx, "goroutines"))

	var posts, tags, categories int64
	require.NoError(t, gdb.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, gdb.Model(&models.Tag{}).Count(&tags).Error)
	require.NoError(t, gdb.Model(&models.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(0), posts)
	assert.Equal(t, int64(2), tags)
	assert.Equal(t, int64(1), categories)
}

func TestUpdateFollowsURLSlug(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewAdminPostService(gdb)
	ctx := context.Background()

	svc.BulkUpsert(ctx, []dto.PostUpsertPayload{ingestPayload("goroutines")})

	payload := ingestPayload("something-else")
	payload.Title = "Updated Title"
	updated, err := svc.Update(ctx, "goroutines", payload)
	require.NoError(t, err)
	assert.Equal(t, "goroutines", updated.Slug)
	assert.Equal(t, "Updated Title", updated.Title)
}
