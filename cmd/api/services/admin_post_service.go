package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"devpress/cmd/api/dto"
	"devpress/cmd/internal/logger"
	"devpress/models"
	"devpress/renderer"
	"devpress/repositories"
)

// AdminPostService owns post ingestion and the admin CRUD surface.
type AdminPostService struct {
	db *gorm.DB
}

func NewAdminPostService(db *gorm.DB) *AdminPostService {
	return &AdminPostService{db: db}
}

// BulkUpsert 는 페이로드를 순서대로 처리한다. 항목마다 독립 트랜잭션을 쓰므로
// 하나가 실패해도 나머지는 계속 진행된다. 응답은 전체가 실패해도 항상
// 항목별 결과 목록이다.
func (s *AdminPostService) BulkUpsert(ctx context.Context, payloads []dto.PostUpsertPayload) dto.BulkUpsertResponseDTO {
	resp := dto.BulkUpsertResponseDTO{
		Total:   len(payloads),
		Results: make([]dto.BulkItemResult, 0, len(payloads)),
	}

	for _, payload := range payloads {
		if issues := payload.Validate(); len(issues) > 0 {
			resp.Failed++
			resp.Results = append(resp.Results, dto.BulkItemResult{
				Slug:   payload.Slug,
				Status: dto.StatusFailed,
				Error:  joinIssues(issues),
			})
			continue
		}

		created, err := s.upsertOne(ctx, payload)
		if err != nil {
			logger.ErrorWithFields("post upsert failed", logger.Fields{
				"slug":  payload.Slug,
				"error": err.Error(),
			})
			resp.Failed++
			resp.Results = append(resp.Results, dto.BulkItemResult{
				Slug:   payload.Slug,
				Status: dto.StatusFailed,
				Error:  err.Error(),
			})
			continue
		}

		status := dto.StatusUpdated
		if created {
			status = dto.StatusCreated
			resp.Created++
		} else {
			resp.Updated++
		}
		resp.Results = append(resp.Results, dto.BulkItemResult{Slug: payload.Slug, Status: status})
	}

	return resp
}

// upsertOne writes a single post inside its own transaction. Category and
// tag rows referenced by the payload are created on demand.
func (s *AdminPostService) upsertOne(ctx context.Context, payload dto.PostUpsertPayload) (created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostRepository(tx)
		categories := repositories.NewCategoryRepository(tx)
		tags := repositories.NewTagRepository(tx)

		category, err := categories.GetOrCreate(ctx, payload.CategorySlug, titleFromSlug(payload.CategorySlug))
		if err != nil {
			return err
		}

		post, err := posts.FindBySlug(ctx, payload.Slug)
		if err == repositories.ErrNotFound {
			created = true
			post = &models.Post{Slug: payload.Slug}
		} else if err != nil {
			return err
		}

		if err := applyPayload(post, payload, category.ID); err != nil {
			return err
		}

		if created {
			if err := posts.Create(ctx, post); err != nil {
				return err
			}
		} else if err := posts.Update(ctx, post); err != nil {
			return err
		}

		tagRows, err := tags.GetOrCreateBatch(ctx, payload.Tags, titleFromSlug)
		if err != nil {
			return err
		}
		return posts.ReplaceTags(ctx, post, tagRows)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Get returns the full admin view of a post, published or not.
func (s *AdminPostService) Get(ctx context.Context, slug string) (*dto.AdminPostDTO, error) {
	post, err := repositories.NewPostRepository(s.db).FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	out := dto.MapAdminPost(*post)
	return &out, nil
}

// Update overwrites an existing post from a single payload. Missing slugs
// are an error here, unlike the bulk endpoint which creates them.
func (s *AdminPostService) Update(ctx context.Context, slug string, payload dto.PostUpsertPayload) (*dto.AdminPostDTO, error) {
	if _, err := repositories.NewPostRepository(s.db).FindBySlug(ctx, slug); err != nil {
		return nil, err
	}
	// URL 의 슬러그가 본문과 달라도 URL 쪽을 따른다.
	payload.Slug = slug
	if _, err := s.upsertOne(ctx, payload); err != nil {
		return nil, err
	}
	return s.Get(ctx, slug)
}

// Delete removes a post and its tag associations. Tag and category rows
// stay behind even when this was their last post.
func (s *AdminPostService) Delete(ctx context.Context, slug string) error {
	posts := repositories.NewPostRepository(s.db)
	post, err := posts.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return posts.Delete(ctx, post)
}

type AdminListPostsInput struct {
	Page      int
	PageSize  int
	Published *bool
	Featured  *bool
	Category  string
	Search    string
}

// List returns a page of posts regardless of visibility, newest first.
func (s *AdminPostService) List(ctx context.Context, in AdminListPostsInput) (dto.Pagination[dto.AdminPostDTO], error) {
	posts, total, err := repositories.NewPostRepository(s.db).List(ctx, repositories.ListFilter{
		Page:      in.Page,
		PageSize:  in.PageSize,
		Published: in.Published,
		Featured:  in.Featured,
		Category:  in.Category,
		Search:    in.Search,
	})
	if err != nil {
		return dto.Pagination[dto.AdminPostDTO]{}, err
	}
	out := make([]dto.AdminPostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.MapAdminPost(p))
	}
	return dto.Pagination[dto.AdminPostDTO]{
		Data:     out,
		Page:     in.Page,
		PageSize: in.PageSize,
		Total:    total,
	}, nil
}

// applyPayload copies validated payload fields onto the model and fills the
// derived fields the payload left empty.
func applyPayload(post *models.Post, payload dto.PostUpsertPayload, categoryID uint) error {
	post.Title = payload.Title
	post.Description = payload.Description
	post.Content = payload.Content
	post.Excerpt = payload.Excerpt
	post.Author = payload.Author
	post.ReadingTime = int(payload.ReadingTime)
	post.Published = payload.Published
	post.Featured = payload.Featured
	post.Keywords = payload.Keywords
	post.FeaturedImage = payload.FeaturedImage
	post.FeaturedImageAlt = payload.FeaturedImageAlt
	post.CategoryID = categoryID

	post.ScheduledFor = nil
	if payload.ScheduledFor != nil {
		t, err := dto.ParseDateTime(*payload.ScheduledFor)
		if err != nil {
			return err
		}
		post.ScheduledFor = &t
	}

	// publishedAt 규칙: 비공개 글은 항상 null, 공개 글은 제출값이 있으면
	// 그 값, 없으면 적재 시각을 새로 찍는다. 재적재 시에도 동일하다.
	switch {
	case !payload.Published:
		post.PublishedAt = nil
	case payload.PublishedAt != nil:
		t, err := dto.ParseDateTime(*payload.PublishedAt)
		if err != nil {
			return err
		}
		post.PublishedAt = &t
	default:
		now := time.Now()
		post.PublishedAt = &now
	}

	if post.Excerpt == "" || post.ReadingTime == 0 {
		if err := fillDerived(post); err != nil {
			return err
		}
	}
	return nil
}

// fillDerived computes excerpt and reading time from the rendered content.
func fillDerived(post *models.Post) error {
	html, err := renderer.Render(post.Content)
	if err != nil {
		return err
	}
	text, err := renderer.PlainText(html)
	if err != nil {
		return err
	}
	if post.Excerpt == "" {
		post.Excerpt = renderer.Excerpt(text, 300)
	}
	if post.ReadingTime == 0 {
		post.ReadingTime = renderer.ReadingTime(text)
	}
	return nil
}

// titleFromSlug turns "web-dev" into "Web Dev" for auto-created rows.
func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func joinIssues(issues []dto.ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "; ")
}
