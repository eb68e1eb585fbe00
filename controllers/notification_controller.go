package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/models"
	"github.com/work-spot/api-go/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListNotifications returns the caller's notifications, newest first.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	user := utils.GetUser(c)

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", user.UserID).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notifications"})
		return
	}

	c.JSON(http.StatusOK, ResourceResponse{Data: notifications})
}
