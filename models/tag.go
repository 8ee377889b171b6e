package models

import "time"

// Tag represents a post tag, attached via the post_tags join table
// Table: tags
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Slug      string    `gorm:"uniqueIndex;size:60" json:"slug"`
	Name      string    `gorm:"size:100" json:"name"`
}
