package models

import (
	"time"
)

// Like represents a user's endorsement of a project.
// The combination of UserID and ProjectID must be unique; the database
// constraint is the final arbiter under concurrent toggles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_project" json:"user_id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_user_project" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
