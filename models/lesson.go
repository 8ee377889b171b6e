package models

import "time"

// Lesson represents a single tutorial page
// Table: lessons
//
// 레슨은 토픽 바로 아래(SectionID null) 또는 그 토픽의 섹션 아래에 놓인다.
// 두 곳에 동시에 속하는 일은 없다.
type Lesson struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug        string `gorm:"index:idx_lessons_topic_slug,unique;size:100" json:"slug"`
	Title       string `gorm:"size:150" json:"title"`
	Description string `gorm:"size:300" json:"description"`
	Content     string `gorm:"type:text" json:"content"`

	// Duration 은 분 단위이며 null 허용이다.
	Duration  *int `json:"duration"`
	Order     int  `gorm:"column:sort_order" json:"order"`
	Published bool `json:"published"`

	TopicID   uint  `gorm:"index:idx_lessons_topic_slug,unique" json:"topic_id"`
	SectionID *uint `gorm:"index" json:"section_id"`
}
