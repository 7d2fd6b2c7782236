// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a submitted project in the Launchpad feed.
// Rows are immutable after creation; deletion is owned by the moderation
// tooling outside this service.
type Project struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text;not null" json:"description"`
	WebsiteURL   string `gorm:"not null" json:"website_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID" json:"user"`
	// LikeCount is not persisted; computed at aggregation time
	LikeCount int `gorm:"->" json:"like_count"`
	// HasLiked indicates whether the current requesting user liked this project (computed)
	HasLiked  bool           `gorm:"->" json:"has_liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
