package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devpress/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetBySlug returns a category by slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreate 는 슬러그로 카테고리를 찾고, 없으면 주어진 표시 이름으로 만든다.
// 포스트 적재 중 참조되는 카테고리는 이 경로로만 생성된다.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, slug, name string) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = models.Category{Slug: slug, Name: name}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryCount pairs a category with its visible post count.
type CategoryCount struct {
	models.Category
	PostCount int64 `json:"post_count"`
}

// ListWithCounts returns all categories with their visible post counts,
// ordered by name. 목록과 같은 공개 조건을 쓴다. 예약 전 글은 세지 않는다.
func (r *CategoryRepository) ListWithCounts(ctx context.Context, now time.Time) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.published = ? AND (posts.scheduled_for IS NULL OR posts.scheduled_for <= ?)", true, now).
		Group("categories.id").
		Order("categories.name ASC").
		Find(&out).Error
	return out, err
}

// Count returns the number of category rows.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}
