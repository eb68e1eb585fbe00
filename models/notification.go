package models

import (
	"time"
)

const NotificationOfficePendingApproval = "office_pending_approval"

// Notification is a persisted message for a user, created when an office
// enters the review queue.
type Notification struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"-"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	OfficeID  uint       `gorm:"index" json:"office_id"`
	Type      string     `gorm:"not null" json:"type"`
	Title     string     `gorm:"not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	ReadAt    *time.Time `json:"read_at"`
}
