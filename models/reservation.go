package models

import (
	"time"
)

const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	OfficeID  uint      `gorm:"not null;index" json:"office_id"`
	Office    Office    `json:"office,omitempty" gorm:"foreignKey:OfficeID"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Price     int       `gorm:"not null;default:0" json:"price"`
	Status    string    `gorm:"type:varchar(20);default:'active';index" json:"status"`
}
