package models

import "time"

// Section represents an ordered grouping of lessons within a topic
// Table: sections
type Section struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug        string `gorm:"index:idx_sections_topic_slug,unique;size:100" json:"slug"`
	Title       string `gorm:"size:150" json:"title"`
	Description string `gorm:"size:300" json:"description"`
	Icon        string `gorm:"size:60" json:"icon"`
	Order       int    `gorm:"column:sort_order" json:"order"`
	Published   bool   `json:"published"`

	TopicID uint     `gorm:"index:idx_sections_topic_slug,unique" json:"topic_id"`
	Lessons []Lesson `json:"lessons"`
}
