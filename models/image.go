package models

import (
	"time"
)

// Image is a stored photo belonging to an office. Key is the object path in
// blob storage; URL is the public address derived from it.
type Image struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	OfficeID  uint      `gorm:"not null;index" json:"office_id"`
	Key       string    `gorm:"not null" json:"-"`
	URL       string    `gorm:"not null" json:"url"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}
