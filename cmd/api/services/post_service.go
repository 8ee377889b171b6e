package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"devpress/cmd/api/dto"
	"devpress/models"
	"devpress/related"
	"devpress/renderer"
	"devpress/repositories"
)

// PostService encapsulates the public read side of the blog: listings,
// rendered detail pages and related-post suggestions.
type PostService struct {
	posts        *repositories.PostRepository
	categories   *repositories.CategoryRepository
	tags         *repositories.TagRepository
	relatedLimit int
}

func NewPostService(db *gorm.DB, relatedLimit int) *PostService {
	return &PostService{
		posts:        repositories.NewPostRepository(db),
		categories:   repositories.NewCategoryRepository(db),
		tags:         repositories.NewTagRepository(db),
		relatedLimit: relatedLimit,
	}
}

type ListPostsInput struct {
	Page     int
	PageSize int
	Category string
	Tag      string
	Featured *bool
	Search   string
}

// List returns a page of publicly visible posts.
func (s *PostService) List(ctx context.Context, in ListPostsInput) (dto.Pagination[dto.PostDTO], error) {
	posts, total, err := s.posts.List(ctx, repositories.ListFilter{
		Page:        in.Page,
		PageSize:    in.PageSize,
		VisibleOnly: true,
		Now:         time.Now(),
		Featured:    in.Featured,
		Category:    in.Category,
		Tag:         in.Tag,
		Search:      in.Search,
	})
	if err != nil {
		return dto.Pagination[dto.PostDTO]{}, err
	}

	out := make([]dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.MapPost(p))
	}
	return dto.Pagination[dto.PostDTO]{
		Data:     out,
		Page:     in.Page,
		PageSize: in.PageSize,
		Total:    total,
	}, nil
}

// GetBySlug loads a visible post, renders its markdown and attaches related
// posts. 비공개/예약 전 글은 repositories.ErrNotFound 로 처리해 존재 여부를
// 드러내지 않는다.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*dto.PostDetailDTO, error) {
	now := time.Now()
	post, err := s.posts.FindVisibleBySlug(ctx, slug, now)
	if err != nil {
		return nil, err
	}

	html, err := renderer.Render(post.Content)
	if err != nil {
		return nil, err
	}

	pool, err := s.posts.FindVisible(ctx, now)
	if err != nil {
		return nil, err
	}

	relatedPosts, label := s.pickRelated(*post, pool)

	detail := &dto.PostDetailDTO{
		PostDTO:   dto.MapPost(*post),
		HTML:      html,
		RelatedBy: string(label),
		Related:   relatedPosts,
	}
	return detail, nil
}

// pickRelated runs the pure ranker over the visible pool and maps the
// selected slugs back onto their posts, preserving the ranker's order.
func (s *PostService) pickRelated(current models.Post, pool []models.Post) ([]dto.RelatedPostDTO, related.Label) {
	items := make([]related.Item, 0, len(pool))
	bySlug := make(map[string]models.Post, len(pool))
	for _, p := range pool {
		tagSlugs := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tagSlugs = append(tagSlugs, t.Slug)
		}
		items = append(items, related.Item{
			ID:       p.Slug,
			Category: p.Category.Slug,
			Tags:     tagSlugs,
		})
		bySlug[p.Slug] = p
	}

	currentTags := make([]string, 0, len(current.Tags))
	for _, t := range current.Tags {
		currentTags = append(currentTags, t.Slug)
	}

	ids, label := related.Pick(current.Slug, current.Category.Slug, currentTags, items, s.relatedLimit)

	out := make([]dto.RelatedPostDTO, 0, len(ids))
	for _, id := range ids {
		out = append(out, dto.MapRelatedPost(bySlug[id]))
	}
	return out, label
}

// Categories returns the category index with visible post counts.
func (s *PostService) Categories(ctx context.Context) ([]dto.CategoryCountDTO, error) {
	counts, err := s.categories.ListWithCounts(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryCountDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.CategoryCountDTO{
			CategoryDTO: dto.MapCategory(c.Category),
			PostCount:   c.PostCount,
		})
	}
	return out, nil
}

// Tags returns the tag index with visible post counts.
func (s *PostService) Tags(ctx context.Context) ([]dto.TagCountDTO, error) {
	counts, err := s.tags.ListWithCounts(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagCountDTO, 0, len(counts))
	for _, t := range counts {
		out = append(out, dto.TagCountDTO{
			TagDTO:    dto.TagDTO{Slug: t.Slug, Name: t.Name},
			PostCount: t.PostCount,
		})
	}
	return out, nil
}
