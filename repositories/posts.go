package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"devpress/models"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("record not found")

type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 는 주어진 DB 핸들(트랜잭션 포함)로 동작하는 리포지토리를 만든다.
// 트랜잭션 안에서 쓸 때는 tx 핸들을 그대로 넘기면 된다.
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// visibleScope 는 공개 조건(published AND 예약 시각 경과)을 적용한다.
func visibleScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("published = ?", true).
			Where("scheduled_for IS NULL OR scheduled_for <= ?", now)
	}
}

// FindBySlug returns a post with its category and tags preloaded.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindVisibleBySlug returns a post only if it is publicly visible at now.
func (r *PostRepository) FindVisibleBySlug(ctx context.Context, slug string, now time.Time) (*models.Post, error) {
	var p models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Scopes(visibleScope(now)).
		Where("slug = ?", slug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindVisible returns all visible posts, most recently published first.
// 관련 글 후보 풀이 이 순서를 그대로 쓰므로 정렬을 바꾸면 안 된다.
func (r *PostRepository) FindVisible(ctx context.Context, now time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Scopes(visibleScope(now)).
		Order("published_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// ListFilter is the listing filter set shared by the admin and public
// listings. VisibleOnly 가 켜지면 Published 필터 대신 공개 조건 전체를
// 적용하고 최신 공개 순으로 정렬한다.
type ListFilter struct {
	Page        int
	PageSize    int
	VisibleOnly bool
	Now         time.Time
	Published   *bool
	Featured    *bool
	Category    string
	Tag         string
	Search      string
}

// List returns a page of posts plus the total count matching the filters.
func (r *PostRepository) List(ctx context.Context, f ListFilter) ([]models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})

	if f.VisibleOnly {
		q = q.Scopes(visibleScope(f.Now))
	} else if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", f.Category)
	}
	if f.Tag != "" {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", f.Tag)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "posts.created_at DESC"
	if f.VisibleOnly {
		order = "posts.published_at DESC, posts.id DESC"
	}

	var posts []models.Post
	err := q.Preload("Category").
		Preload("Tags").
		Distinct("posts.*").
		Order(order).
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&posts).Error
	return posts, total, err
}

// Create inserts a new post row.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Omit("Tags", "Category").Create(p).Error
}

// Update saves all mutable columns of an existing post.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Omit("Tags", "Category").Save(p).Error
}

// ReplaceTags fully replaces the post's tag associations.
// 부분 추가/삭제는 지원하지 않는다. 항상 제출된 목록과 정확히 일치시킨다.
func (r *PostRepository) ReplaceTags(ctx context.Context, p *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(p).Association("Tags").Replace(tags)
}

// Delete removes the post and its post_tags join rows.
// Tag/Category rows themselves are never deleted here.
func (r *PostRepository) Delete(ctx context.Context, p *models.Post) error {
	if err := r.db.WithContext(ctx).Model(p).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(p).Error
}
