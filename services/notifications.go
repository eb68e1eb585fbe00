package services

import (
	"github.com/work-spot/api-go/models"
	"gorm.io/gorm"
)

// NotificationGateway delivers a message to a single user. The production
// implementation persists notification rows; tests substitute a recorder.
type NotificationGateway interface {
	Notify(userID, officeID uint, kind, title, body string) error
}

type DatabaseNotificationGateway struct {
	DB *gorm.DB
}

func NewDatabaseNotificationGateway(db *gorm.DB) *DatabaseNotificationGateway {
	return &DatabaseNotificationGateway{DB: db}
}

func (g *DatabaseNotificationGateway) Notify(userID, officeID uint, kind, title, body string) error {
	notification := models.Notification{
		UserID:   userID,
		OfficeID: officeID,
		Type:     kind,
		Title:    title,
		Body:     body,
	}

	return g.DB.Create(&notification).Error
}
