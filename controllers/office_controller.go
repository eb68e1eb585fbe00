package controllers

import (
	"log"
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/work-spot/api-go/models"
	"github.com/work-spot/api-go/services"
	"github.com/work-spot/api-go/storage"
	"github.com/work-spot/api-go/utils"
	"gorm.io/gorm"
)

// Listing pages are fixed-size; clients only choose the page number.
const officesPerPage = 20

type OfficeController struct {
	DB       *gorm.DB
	Approval *services.ApprovalService
	Blobs    storage.BlobStorage
}

func NewOfficeController(db *gorm.DB, approval *services.ApprovalService, blobs storage.BlobStorage) *OfficeController {
	return &OfficeController{DB: db, Approval: approval, Blobs: blobs}
}

type ListOfficesQuery struct {
	UserID    uint     `form:"user_id"`
	VisitorID uint     `form:"visitor_id"`
	Lat       *float64 `form:"lat"`
	Lng       *float64 `form:"lng"`
	Page      int      `form:"page,default=1" binding:"min=1"`
}

type CreateOfficeRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Address         string   `json:"address"`
	Lat             *float64 `json:"lat" binding:"required"`
	Lng             *float64 `json:"lng" binding:"required"`
	PricePerDay     int      `json:"price_per_day" binding:"required,min=1"`
	MonthlyDiscount int      `json:"monthly_discount" binding:"min=0,max=90"`
	Hidden          bool     `json:"hidden"`
	Amenities       []string `json:"amenities"`
	TagIDs          []uint   `json:"tags"`
}

type UpdateOfficeRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Address         *string  `json:"address"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	PricePerDay     *int     `json:"price_per_day" binding:"omitempty,min=1"`
	MonthlyDiscount *int     `json:"monthly_discount" binding:"omitempty,min=0,max=90"`
	Hidden          *bool    `json:"hidden"`
	Amenities       []string `json:"amenities"`
	TagIDs          *[]uint  `json:"tags"`
	FeaturedImageID *uint    `json:"featured_image_id"`
}

// ListOffices godoc
// @Summary List visible offices with filters and optional distance ordering
// @Tags offices
// @Accept json
// @Produce json
// @Param user_id query integer false "Restrict to offices owned by this user"
// @Param visitor_id query integer false "Restrict to offices this visitor has reserved"
// @Param lat query number false "Order by distance from this latitude"
// @Param lng query number false "Order by distance from this longitude"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} CollectionResponse
// @Router /offices [get]
func (oc *OfficeController) ListOffices(c *gin.Context) {
	var query ListOfficesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := utils.GetUser(c)

	db := oc.DB.Model(&models.Office{})

	// Hidden and unapproved offices stay out of the listing, except when
	// owners ask for their own.
	ownListing := query.UserID != 0 && user != nil && user.UserID == query.UserID
	if !ownListing {
		db = db.Where("hidden = ? AND approval_status = ?", false, models.ApprovalApproved)
	}

	if query.UserID != 0 {
		db = db.Where("offices.user_id = ?", query.UserID)
	}

	if query.VisitorID != 0 {
		db = db.Where("EXISTS (SELECT 1 FROM reservations WHERE reservations.office_id = offices.id AND reservations.user_id = ?)", query.VisitorID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching offices"})
		return
	}

	db = db.
		Select("offices.*, (SELECT COUNT(*) FROM reservations WHERE reservations.office_id = offices.id AND reservations.status = ?) AS reservations_count", models.ReservationActive).
		Preload("Tags").Preload("Images").Preload("User")

	offset := (query.Page - 1) * officesPerPage

	var offices []models.Office
	if query.Lat != nil && query.Lng != nil {
		// Distance ordering is computed in Go so it behaves identically on
		// every database; the page is sliced after the sort.
		if err := db.Order("offices.id").Find(&offices).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching offices"})
			return
		}

		for i := range offices {
			offices[i].Distance = haversineKm(*query.Lat, *query.Lng, offices[i].Lat, offices[i].Lng)
		}
		sort.SliceStable(offices, func(i, j int) bool {
			return offices[i].Distance < offices[j].Distance
		})

		if offset >= len(offices) {
			offices = []models.Office{}
		} else {
			end := offset + officesPerPage
			if end > len(offices) {
				end = len(offices)
			}
			offices = offices[offset:end]
		}
	} else {
		if err := db.Order("offices.id").Offset(offset).Limit(officesPerPage).Find(&offices).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching offices"})
			return
		}
	}

	c.JSON(http.StatusOK, NewCollectionResponse(c, offices, query.Page, officesPerPage, total))
}

// GetOffice godoc
// @Summary Get a single office with tags, images, owner and reservation count
// @Tags offices
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Success 200 {object} ResourceResponse
// @Router /offices/{id} [get]
func (oc *OfficeController) GetOffice(c *gin.Context) {
	// Direct lookup ignores the hidden/approval listing filter.
	var office models.Office
	if err := oc.officeScope().Where("offices.id = ?", c.Param("id")).First(&office).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Office not found"})
		return
	}

	c.JSON(http.StatusOK, ResourceResponse{Data: office})
}

// CreateOffice godoc
// @Summary Create a new office listing
// @Description The office always starts pending approval, owned by the caller
// @Tags offices
// @Accept json
// @Produce json
// @Param office body CreateOfficeRequest true "Office creation request"
// @Success 201 {object} ResourceResponse
// @Router /offices [post]
func (oc *OfficeController) CreateOffice(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	tags, ok := oc.loadTags(req.TagIDs)
	if !ok {
		RespondValidationError(c, "tags", "One or more tags do not exist")
		return
	}

	office := models.Office{
		UserID:          user.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Address:         req.Address,
		Lat:             *req.Lat,
		Lng:             *req.Lng,
		PricePerDay:     req.PricePerDay,
		MonthlyDiscount: req.MonthlyDiscount,
		Hidden:          req.Hidden,
		ApprovalStatus:  models.ApprovalPending,
		Amenities:       req.Amenities,
		Tags:            tags,
	}

	// Omit Tags.* so creating the office links existing tags without
	// touching the tag rows themselves.
	if err := oc.DB.Omit("Tags.*").Create(&office).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create office"})
		return
	}

	oc.Approval.NotifyAdmins(&office)

	created, err := oc.findEnriched(office.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created office"})
		return
	}

	c.JSON(http.StatusCreated, ResourceResponse{Data: created})
}

// UpdateOffice godoc
// @Summary Update an office listing
// @Description Owner only; coordinate changes send the office back to review
// @Tags offices
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param office body UpdateOfficeRequest true "Office update request"
// @Success 200 {object} ResourceResponse
// @Router /offices/{id} [put]
func (oc *OfficeController) UpdateOffice(c *gin.Context) {
	user := utils.GetUser(c)

	var office models.Office
	if err := oc.DB.Where("id = ?", c.Param("id")).First(&office).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Office not found"})
		return
	}

	// Ownership gate before any field processing.
	if office.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own offices"})
		return
	}

	var req UpdateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	if req.FeaturedImageID != nil {
		var image models.Image
		err := oc.DB.Where("id = ?", *req.FeaturedImageID).First(&image).Error
		if err != nil || image.OfficeID != office.ID {
			RespondValidationError(c, "featured_image_id", "The featured image must belong to this office")
			return
		}
	}

	var tags []models.Tag
	if req.TagIDs != nil {
		var ok bool
		tags, ok = oc.loadTags(*req.TagIDs)
		if !ok {
			RespondValidationError(c, "tags", "One or more tags do not exist")
			return
		}
	}

	needsReview := office.NeedsReview(req.Lat, req.Lng)

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Lng != nil {
		updates["lng"] = *req.Lng
	}
	if req.PricePerDay != nil {
		updates["price_per_day"] = *req.PricePerDay
	}
	if req.MonthlyDiscount != nil {
		updates["monthly_discount"] = *req.MonthlyDiscount
	}
	if req.Hidden != nil {
		updates["hidden"] = *req.Hidden
	}
	if req.Amenities != nil {
		updates["amenities"] = pq.StringArray(req.Amenities)
	}
	if req.FeaturedImageID != nil {
		updates["featured_image_id"] = *req.FeaturedImageID
	}

	tx := oc.DB.Begin()

	if len(updates) > 0 {
		if err := tx.Model(&office).Updates(updates).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update office"})
			return
		}
	}

	if req.TagIDs != nil {
		if err := tx.Model(&office).Association("Tags").Replace(tags); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update office tags"})
			return
		}
	}

	if needsReview {
		if err := oc.Approval.MarkPending(tx, &office); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update office"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	if needsReview {
		oc.Approval.NotifyAdmins(&office)
	}

	updated, err := oc.findEnriched(office.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated office"})
		return
	}

	c.JSON(http.StatusOK, ResourceResponse{Data: updated})
}

// DeleteOffice godoc
// @Summary Delete an office listing
// @Description Owner only; blocked while the office has reservations. The
// office record is soft-deleted, its image files are removed for good.
// @Tags offices
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Success 200 {object} map[string]interface{}
// @Router /offices/{id} [delete]
func (oc *OfficeController) DeleteOffice(c *gin.Context) {
	user := utils.GetUser(c)

	var office models.Office
	if err := oc.DB.Preload("Images").Where("id = ?", c.Param("id")).First(&office).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Office not found"})
		return
	}

	if office.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own offices"})
		return
	}

	// Any reservation, whatever its status, blocks deletion.
	var reservationCount int64
	if err := oc.DB.Model(&models.Reservation{}).Where("office_id = ?", office.ID).Count(&reservationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check reservations"})
		return
	}
	if reservationCount > 0 {
		RespondValidationError(c, "office", "Cannot delete an office that has reservations")
		return
	}

	tx := oc.DB.Begin()

	if err := tx.Where("office_id = ?", office.ID).Delete(&models.Image{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete office images"})
		return
	}

	if err := tx.Delete(&office).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete office"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	// Blob cleanup is best-effort: the office is already gone and a failed
	// delete must not resurrect it.
	for _, image := range office.Images {
		if err := oc.Blobs.Delete(image.Key); err != nil {
			log.Printf("Failed to delete image file %s for office %d: %v", image.Key, office.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Office deleted successfully"})
}

// officeScope attaches the enrichment every office response carries.
func (oc *OfficeController) officeScope() *gorm.DB {
	return oc.DB.Model(&models.Office{}).
		Select("offices.*, (SELECT COUNT(*) FROM reservations WHERE reservations.office_id = offices.id AND reservations.status = ?) AS reservations_count", models.ReservationActive).
		Preload("Tags").Preload("Images").Preload("User")
}

func (oc *OfficeController) findEnriched(id uint) (*models.Office, error) {
	var office models.Office
	if err := oc.officeScope().Where("offices.id = ?", id).First(&office).Error; err != nil {
		return nil, err
	}
	return &office, nil
}

// loadTags resolves tag ids to rows, reporting false when any id is unknown.
func (oc *OfficeController) loadTags(ids []uint) ([]models.Tag, bool) {
	if len(ids) == 0 {
		return []models.Tag{}, true
	}

	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	var found []models.Tag
	if err := oc.DB.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, false
	}
	if len(found) != len(unique) {
		return nil, false
	}

	// Keep the caller's ordering: association rows are written in the order
	// the ids were given.
	byID := make(map[uint]models.Tag, len(found))
	for _, tag := range found {
		byID[tag.ID] = tag
	}
	tags := make([]models.Tag, 0, len(unique))
	seen := make(map[uint]struct{}, len(unique))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		tags = append(tags, byID[id])
	}

	return tags, true
}

// haversineKm returns the great-circle distance between two points in
// kilometers.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δφ := (lat2 - lat1) * math.Pi / 180
	Δλ := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}
