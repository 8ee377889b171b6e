package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"devpress/models"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetOrCreateBatch 는 슬러그 목록에 해당하는 태그를 모두 반환한다.
// 없는 태그는 주어진 이름 생성 함수로 일괄 생성한다. 반환 순서는 입력 슬러그
// 순서를 따른다.
func (r *TagRepository) GetOrCreateBatch(ctx context.Context, slugs []string, nameOf func(slug string) string) ([]models.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	var existing []models.Tag
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&existing).Error; err != nil {
		return nil, err
	}
	bySlug := make(map[string]models.Tag, len(existing))
	for _, t := range existing {
		bySlug[t.Slug] = t
	}

	var missing []models.Tag
	for _, slug := range slugs {
		if _, ok := bySlug[slug]; ok {
			continue
		}
		missing = append(missing, models.Tag{Slug: slug, Name: nameOf(slug)})
		// 중복 슬러그 입력에 대비해 자리만 미리 차지해 둔다.
		bySlug[slug] = models.Tag{}
	}
	if len(missing) > 0 {
		if err := r.db.WithContext(ctx).Create(&missing).Error; err != nil {
			return nil, err
		}
		for _, t := range missing {
			bySlug[t.Slug] = t
		}
	}

	out := make([]models.Tag, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, bySlug[slug])
	}
	return out, nil
}

// TagCount pairs a tag with its visible post count.
type TagCount struct {
	models.Tag
	PostCount int64 `json:"post_count"`
}

// ListWithCounts returns all tags with their visible post counts.
// 목록과 같은 공개 조건을 쓴다. 예약 전 글은 세지 않는다.
func (r *TagRepository) ListWithCounts(ctx context.Context, now time.Time) ([]TagCount, error) {
	var out []TagCount
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tags.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("LEFT JOIN posts ON posts.id = post_tags.post_id AND posts.published = ? AND (posts.scheduled_for IS NULL OR posts.scheduled_for <= ?)", true, now).
		Group("tags.id").
		Order("tags.name ASC").
		Find(&out).Error
	return out, err
}

// Count returns the number of tag rows.
func (r *TagRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&n).Error
	return n, err
}
