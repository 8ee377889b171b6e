package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devpress/cmd/api/dto"
	"devpress/curriculum"
	"devpress/models"
	"devpress/renderer"
	"devpress/repositories"
)

// LearnService serves the tutorial side: topic listings, outlines, rendered
// lesson pages and topic ingestion.
type LearnService struct {
	db     *gorm.DB
	topics *repositories.TopicRepository
}

func NewLearnService(db *gorm.DB) *LearnService {
	return &LearnService{db: db, topics: repositories.NewTopicRepository(db)}
}

// ListTopics returns all published topics with their published lesson counts.
func (s *LearnService) ListTopics(ctx context.Context) ([]dto.TopicDTO, error) {
	topics, err := s.topics.ListPublishedWithContents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopicDTO, 0, len(topics))
	for _, t := range topics {
		out = append(out, dto.MapTopic(t, len(curriculum.Flatten(t))))
	}
	return out, nil
}

// GetTopic returns a published topic with its merged outline.
// 비공개 토픽은 존재하지 않는 것으로 취급한다.
func (s *LearnService) GetTopic(ctx context.Context, slug string) (*dto.TopicDetailDTO, error) {
	topic, err := s.topics.GetBySlugWithContents(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !topic.Published {
		return nil, repositories.ErrNotFound
	}

	detail := &dto.TopicDetailDTO{
		TopicDTO: dto.MapTopic(*topic, len(curriculum.Flatten(*topic))),
		Outline:  dto.MapOutline(curriculum.BuildOutline(*topic)),
	}
	return detail, nil
}

// GetLesson returns a rendered lesson page with its prev/next neighbors.
func (s *LearnService) GetLesson(ctx context.Context, topicSlug, lessonSlug string) (*dto.LessonDetailDTO, error) {
	topic, err := s.topics.GetBySlugWithContents(ctx, topicSlug)
	if err != nil {
		return nil, err
	}
	if !topic.Published {
		return nil, repositories.ErrNotFound
	}

	var lesson *models.Lesson
	for _, l := range curriculum.Flatten(*topic) {
		if l.Slug == lessonSlug {
			found := l
			lesson = &found
			break
		}
	}
	if lesson == nil {
		return nil, repositories.ErrNotFound
	}

	html, err := renderer.Render(lesson.Content)
	if err != nil {
		return nil, err
	}

	prev, next, err := curriculum.Neighbors(*topic, lessonSlug)
	if errors.Is(err, curriculum.ErrLessonNotFound) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sectionSlugs := make(map[uint]string, len(topic.Sections))
	for _, sec := range topic.Sections {
		sectionSlugs[sec.ID] = sec.Slug
	}
	link := func(l *models.Lesson) *dto.LessonLinkDTO {
		if l == nil {
			return nil
		}
		sectionSlug := ""
		if l.SectionID != nil {
			sectionSlug = sectionSlugs[*l.SectionID]
		}
		d := dto.MapLessonLink(*l, sectionSlug)
		return &d
	}

	return &dto.LessonDetailDTO{
		Slug:        lesson.Slug,
		Title:       lesson.Title,
		Description: lesson.Description,
		Duration:    lesson.Duration,
		HTML:        html,
		TopicSlug:   topic.Slug,
		Prev:        link(prev),
		Next:        link(next),
	}, nil
}

// UpsertTopic replaces a topic's whole tree from an ingestion payload.
// 제출되지 않은 기존 섹션/레슨은 삭제된다. 토픽 단위 전체 교체가 계약이다.
func (s *LearnService) UpsertTopic(ctx context.Context, slug string, payload dto.TopicUpsertPayload) (created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topics := repositories.NewTopicRepository(tx)
		lessons := repositories.NewLessonRepository(tx)

		topic := &models.Topic{
			Slug:        slug,
			Title:       payload.Title,
			Description: payload.Description,
			Icon:        payload.Icon,
			Order:       payload.Order,
			Published:   payload.Published,
		}
		created, err = topics.Upsert(ctx, topic)
		if err != nil {
			return err
		}

		lessonSlugs := make([]string, 0, len(payload.Lessons))
		sectionSlugs := make([]string, 0, len(payload.Sections))

		for _, lp := range payload.Lessons {
			lessonSlugs = append(lessonSlugs, lp.Slug)
			if err := lessons.UpsertForTopic(ctx, topic.ID, lessonModel(lp, nil)); err != nil {
				return err
			}
		}

		for _, sp := range payload.Sections {
			sectionSlugs = append(sectionSlugs, sp.Slug)
			section := &models.Section{
				Slug:        sp.Slug,
				Title:       sp.Title,
				Description: sp.Description,
				Icon:        sp.Icon,
				Order:       sp.Order,
				Published:   sp.Published,
			}
			if err := lessons.UpsertSection(ctx, topic.ID, section); err != nil {
				return err
			}
			for _, lp := range sp.Lessons {
				lessonSlugs = append(lessonSlugs, lp.Slug)
				if err := lessons.UpsertForTopic(ctx, topic.ID, lessonModel(lp, &section.ID)); err != nil {
					return err
				}
			}
		}

		if err := deleteStale(tx, &models.Lesson{}, topic.ID, lessonSlugs); err != nil {
			return err
		}
		return deleteStale(tx, &models.Section{}, topic.ID, sectionSlugs)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func lessonModel(p dto.LessonPayload, sectionID *uint) *models.Lesson {
	return &models.Lesson{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		Duration:    p.Duration,
		Order:       p.Order,
		Published:   p.Published,
		SectionID:   sectionID,
	}
}

// deleteStale removes the topic's rows whose slug was not part of the
// submitted tree.
func deleteStale(tx *gorm.DB, model interface{}, topicID uint, keep []string) error {
	q := tx.Where("topic_id = ?", topicID)
	if len(keep) > 0 {
		q = q.Where("slug NOT IN ?", keep)
	}
	return q.Delete(model).Error
}
