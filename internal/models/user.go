// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member profile in the Launchpad application.
// Accounts are provisioned by the external identity provider; this service
// only stores the display profile referenced by submissions and activity.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	DisplayName string         `gorm:"not null" json:"display_name"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Avatar      string         `json:"avatar"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Projects    []Project      `gorm:"foreignKey:UserID" json:"projects,omitempty"`
}
