package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devpress/models"
)

type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// UpsertForTopic creates or updates a lesson row scoped by (topic, slug).
// SectionID 는 제출된 값으로 항상 덮어쓴다. 섹션 간 이동이 이 경로로 일어난다.
func (r *LessonRepository) UpsertForTopic(ctx context.Context, topicID uint, l *models.Lesson) error {
	l.TopicID = topicID

	var existing models.Lesson
	err := r.db.WithContext(ctx).
		Where("topic_id = ? AND slug = ?", topicID, l.Slug).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(l).Error
	}
	if err != nil {
		return err
	}

	l.ID = existing.ID
	l.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(l).Error
}

// UpsertSection creates or updates a section row scoped by (topic, slug).
func (r *LessonRepository) UpsertSection(ctx context.Context, topicID uint, s *models.Section) error {
	s.TopicID = topicID

	var existing models.Section
	err := r.db.WithContext(ctx).
		Where("topic_id = ? AND slug = ?", topicID, s.Slug).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Omit("Lessons").Create(s).Error
	}
	if err != nil {
		return err
	}

	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Omit("Lessons").Save(s).Error
}
