package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post represents a blog article
// Table: posts
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug        string `gorm:"uniqueIndex;size:100" json:"slug"`
	Title       string `gorm:"size:150" json:"title"`
	Description string `gorm:"size:300" json:"description"`
	Content     string `gorm:"type:text" json:"content"`
	Excerpt     string `gorm:"size:300" json:"excerpt"`
	Author      string `gorm:"size:100" json:"author"`

	// ReadingTime 은 분 단위 예상 읽기 시간이다.
	ReadingTime int  `json:"reading_time"`
	Published   bool `gorm:"index" json:"published"`
	Featured    bool `json:"featured"`

	// PublishedAt 은 공개 시각, ScheduledFor 는 예약 공개 시각이다.
	// 둘 다 null 허용이며 가시성 판단은 Published 와 ScheduledFor 로만 한다.
	PublishedAt  *time.Time `gorm:"index" json:"published_at"`
	ScheduledFor *time.Time `json:"scheduled_for"`

	Keywords datatypes.JSONSlice[string] `json:"keywords"`

	FeaturedImage    string `json:"featured_image"`
	FeaturedImageAlt string `gorm:"size:160" json:"featured_image_alt"`

	CategoryID uint     `gorm:"index" json:"category_id"`
	Category   Category `json:"category"`
	Tags       []Tag    `gorm:"many2many:post_tags;" json:"tags"`
}

// Visible reports whether the post should be served publicly at time now.
func (p Post) Visible(now time.Time) bool {
	if !p.Published {
		return false
	}
	if p.ScheduledFor != nil && p.ScheduledFor.After(now) {
		return false
	}
	return true
}
