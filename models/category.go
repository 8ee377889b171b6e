package models

import "time"

// Category represents a post category
// Table: categories
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Slug      string    `gorm:"uniqueIndex;size:60" json:"slug"`
	Name      string    `gorm:"size:100" json:"name"`
}
