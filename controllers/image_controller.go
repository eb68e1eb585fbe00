package controllers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/work-spot/api-go/models"
	"github.com/work-spot/api-go/storage"
	"github.com/work-spot/api-go/utils"
	"gorm.io/gorm"
)

type ImageController struct {
	DB    *gorm.DB
	Blobs storage.BlobStorage
}

func NewImageController(db *gorm.DB, blobs storage.BlobStorage) *ImageController {
	return &ImageController{DB: db, Blobs: blobs}
}

type PresignImageRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignImageResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type AttachImageRequest struct {
	Key       string `json:"key" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// PresignUpload godoc
// @Summary Get a presigned upload URL for a new office image
// @Tags images
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param image body PresignImageRequest true "Upload request"
// @Success 200 {object} PresignImageResponse
// @Router /offices/{id}/images/presign [post]
func (ic *ImageController) PresignUpload(c *gin.Context) {
	office, ok := ic.ownedOffice(c)
	if !ok {
		return
	}

	var req PresignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	if !isValidImageType(req.ContentType) {
		RespondValidationError(c, "contentType", "Unsupported image type")
		return
	}

	if req.FileSize > 10*1024*1024 {
		RespondValidationError(c, "fileSize", "Image must be 10MB or smaller")
		return
	}

	key := generateImageKey(office.ID, req.FileName)

	uploadURL, err := ic.Blobs.PresignPut(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, PresignImageResponse{
		UploadURL: uploadURL,
		FileURL:   ic.Blobs.PublicURL(key),
		Key:       key,
		ExpiresIn: 3600,
	})
}

// AttachImage godoc
// @Summary Register an uploaded file as an office image
// @Tags images
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param image body AttachImageRequest true "Uploaded file key"
// @Success 201 {object} ResourceResponse
// @Router /offices/{id}/images [post]
func (ic *ImageController) AttachImage(c *gin.Context) {
	office, ok := ic.ownedOffice(c)
	if !ok {
		return
	}

	var req AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	// The key encodes the office it was presigned for.
	if !strings.HasPrefix(req.Key, fmt.Sprintf("offices/%d/", office.ID)) {
		RespondValidationError(c, "key", "Key does not belong to this office")
		return
	}

	exists, err := ic.Blobs.Exists(req.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify file upload"})
		return
	}
	if !exists {
		RespondValidationError(c, "key", "File not found in storage")
		return
	}

	image := models.Image{
		OfficeID:  office.ID,
		Key:       req.Key,
		URL:       ic.Blobs.PublicURL(req.Key),
		SortOrder: req.SortOrder,
	}

	if err := ic.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, ResourceResponse{Data: image})
}

// DeleteImage godoc
// @Summary Delete an office image and its stored file
// @Tags images
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Router /offices/{id}/images/{imageId} [delete]
func (ic *ImageController) DeleteImage(c *gin.Context) {
	office, ok := ic.ownedOffice(c)
	if !ok {
		return
	}

	var image models.Image
	if err := ic.DB.Where("id = ? AND office_id = ?", c.Param("imageId"), office.ID).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if office.FeaturedImageID != nil && *office.FeaturedImageID == image.ID {
		RespondValidationError(c, "featured_image_id", "Cannot delete the featured image")
		return
	}

	if err := ic.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	if err := ic.Blobs.Delete(image.Key); err != nil {
		log.Printf("Failed to delete image file %s for office %d: %v", image.Key, office.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// ownedOffice loads the office in the path and enforces ownership, writing
// the error response itself when the check fails.
func (ic *ImageController) ownedOffice(c *gin.Context) (*models.Office, bool) {
	user := utils.GetUser(c)

	var office models.Office
	if err := ic.DB.Where("id = ?", c.Param("id")).First(&office).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Office not found"})
		return nil, false
	}

	if office.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage images of your own offices"})
		return nil, false
	}

	return &office, true
}

func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}

	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func generateImageKey(officeID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	uuid := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("offices/%d/%d_%s%s", officeID, timestamp, uuid, ext)
}
