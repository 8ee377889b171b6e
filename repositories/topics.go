package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devpress/models"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// ListPublished returns all published topics ordered for display.
func (r *TopicRepository) ListPublished(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("sort_order ASC, slug ASC").
		Find(&topics).Error
	return topics, err
}

// GetBySlug returns a topic without its contents.
func (r *TopicRepository) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	var t models.Topic
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySlugWithContents 는 토픽과 그 아래 전체 구조를 적재한다.
// Lessons 에는 독립 레슨만, 섹션 레슨은 Sections[i].Lessons 에 실린다.
// 정렬은 순수 함수(curriculum 패키지)가 담당하므로 여기서는 하지 않는다.
func (r *TopicRepository) GetBySlugWithContents(ctx context.Context, slug string) (*models.Topic, error) {
	var t models.Topic
	err := r.db.WithContext(ctx).
		Preload("Lessons", "section_id IS NULL").
		Preload("Sections").
		Preload("Sections.Lessons").
		Where("slug = ?", slug).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListPublishedWithContents returns every published topic with its full tree.
// Sitemap 생성에서만 쓰므로 호출 빈도는 낮다.
func (r *TopicRepository) ListPublishedWithContents(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.WithContext(ctx).
		Preload("Lessons", "section_id IS NULL").
		Preload("Sections").
		Preload("Sections.Lessons").
		Where("published = ?", true).
		Order("sort_order ASC, slug ASC").
		Find(&topics).Error
	return topics, err
}

// Upsert creates or updates a topic row by slug and reports whether a new
// row was created.
func (r *TopicRepository) Upsert(ctx context.Context, t *models.Topic) (created bool, err error) {
	var existing models.Topic
	err = r.db.WithContext(ctx).Where("slug = ?", t.Slug).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, r.db.WithContext(ctx).Omit("Lessons", "Sections").Create(t).Error
	}
	if err != nil {
		return false, err
	}

	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	return false, r.db.WithContext(ctx).Omit("Lessons", "Sections").Save(t).Error
}
