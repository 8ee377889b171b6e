package models

import "time"

// Topic represents a top-level tutorial subject
// Table: topics
//
// Lessons 는 섹션에 속하지 않은 독립 레슨만 담는다(SectionID null).
// 섹션 내부 레슨은 Sections[i].Lessons 로 적재한다.
type Topic struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug        string `gorm:"uniqueIndex;size:100" json:"slug"`
	Title       string `gorm:"size:150" json:"title"`
	Description string `gorm:"size:300" json:"description"`
	Icon        string `gorm:"size:60" json:"icon"`
	Order       int    `gorm:"column:sort_order" json:"order"`
	Published   bool   `gorm:"index" json:"published"`

	Lessons  []Lesson  `json:"lessons"`
	Sections []Section `json:"sections"`
}
