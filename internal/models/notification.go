package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification kinds recorded in the activity stream.
const (
	NotificationLike       = "like"
	NotificationComment    = "comment"
	NotificationNewProject = "new_project"
)

// Notification represents a social action directed at a recipient user.
// Rows are append-only; the only mutation this service performs is flipping
// the Read flag.
type Notification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Type      string `gorm:"not null" json:"type"`
	Read      bool   `gorm:"not null;default:false;index" json:"read"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	ProjectID uint   `gorm:"not null" json:"project_id"`
	ActorID   uint   `gorm:"not null" json:"actor_id"`
	// Actor and Project are joined for display; either may be gone by the
	// time the inbox is read (deleted account, removed project).
	Actor     User           `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Project   Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
