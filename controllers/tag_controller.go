package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/models"
	"gorm.io/gorm"
)

type TagController struct {
	DB *gorm.DB
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{DB: db}
}

// ListTags returns the full tag vocabulary.
func (tc *TagController) ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := tc.DB.Order("id").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tags"})
		return
	}

	c.JSON(http.StatusOK, ResourceResponse{Data: tags})
}
