package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Phone         *string        `gorm:"unique" json:"phone,omitempty"`
	Password      *string        `json:"-"` // nil for OAuth-only accounts
	Avatar        string         `json:"avatar,omitempty"`
	GoogleID      *string        `gorm:"index" json:"-"`
	Provider      string         `gorm:"default:'email'" json:"-"`
	IsAdmin       bool           `gorm:"default:false" json:"is_admin"`
	Offices       []Office       `json:"offices,omitempty" gorm:"foreignKey:UserID"`
	Reservations  []Reservation  `json:"reservations,omitempty" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
	Notifications []Notification `json:"-" gorm:"foreignKey:UserID"`
}
