package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Office struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `json:"user" gorm:"foreignKey:UserID"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Address         string         `json:"address"`
	Lat             float64        `gorm:"not null;type:decimal(10,8)" json:"lat"`
	Lng             float64        `gorm:"not null;type:decimal(11,8)" json:"lng"`
	PricePerDay     int            `gorm:"not null;default:0" json:"price_per_day"`
	MonthlyDiscount int            `gorm:"default:0" json:"monthly_discount"`
	Hidden          bool           `gorm:"default:false" json:"hidden"`
	ApprovalStatus  string         `gorm:"type:varchar(20);default:'pending';index" json:"approval_status"`
	FeaturedImageID *uint          `json:"featured_image_id"`
	Amenities       pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Tags            []Tag          `json:"tags" gorm:"many2many:office_tags"`
	Images          []Image        `json:"images" gorm:"foreignKey:OfficeID"`
	Reservations    []Reservation  `json:"-" gorm:"foreignKey:OfficeID"`

	// Populated by queries, never stored.
	ReservationsCount int64   `gorm:"->;-:migration" json:"reservations_count"`
	Distance          float64 `gorm:"-" json:"distance,omitempty"`
}

// NeedsReview reports whether applying the given coordinate changes sends the
// office back through admin review. Coordinates are the full set of fields
// whose change invalidates a previous approval.
func (o *Office) NeedsReview(lat, lng *float64) bool {
	if lat != nil && *lat != o.Lat {
		return true
	}
	if lng != nil && *lng != o.Lng {
		return true
	}
	return false
}
