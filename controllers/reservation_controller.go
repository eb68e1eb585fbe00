package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/models"
	"github.com/work-spot/api-go/utils"
	"gorm.io/gorm"
)

const reservationsPerPage = 20

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

type CreateReservationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// ListReservations godoc
// @Summary List the caller's reservations
// @Tags reservations
// @Accept json
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} CollectionResponse
// @Router /reservations [get]
func (rc *ReservationController) ListReservations(c *gin.Context) {
	user := utils.GetUser(c)

	var query struct {
		Page int `form:"page,default=1" binding:"min=1"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := rc.DB.Model(&models.Reservation{}).Where("user_id = ?", user.UserID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reservations"})
		return
	}

	offset := (query.Page - 1) * reservationsPerPage

	var reservations []models.Reservation
	if err := db.Preload("Office").Order("reservations.id DESC").
		Offset(offset).Limit(reservationsPerPage).Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reservations"})
		return
	}

	c.JSON(http.StatusOK, NewCollectionResponse(c, reservations, query.Page, reservationsPerPage, total))
}

// CreateReservation godoc
// @Summary Book an office for a date range
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param reservation body CreateReservationRequest true "Reservation request"
// @Success 201 {object} ResourceResponse
// @Router /offices/{id}/reservations [post]
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	user := utils.GetUser(c)

	// Only live listings can be booked.
	var office models.Office
	err := rc.DB.Where("id = ? AND hidden = ? AND approval_status = ?",
		c.Param("id"), false, models.ApprovalApproved).First(&office).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Office not found"})
		return
	}

	if office.UserID == user.UserID {
		RespondValidationError(c, "office_id", "You cannot reserve your own office")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		RespondValidationError(c, "start_date", "Invalid date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		RespondValidationError(c, "end_date", "Invalid date, expected YYYY-MM-DD")
		return
	}
	if !endDate.After(startDate) {
		RespondValidationError(c, "end_date", "End date must be after the start date")
		return
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	price := days * office.PricePerDay
	if days >= 28 && office.MonthlyDiscount > 0 {
		price -= price * office.MonthlyDiscount / 100
	}

	reservation := models.Reservation{
		OfficeID:  office.ID,
		UserID:    user.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Price:     price,
		Status:    models.ReservationActive,
	}

	if err := rc.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	c.JSON(http.StatusCreated, ResourceResponse{Data: reservation})
}

// CancelReservation godoc
// @Summary Cancel a reservation
// @Description The row is kept with status cancelled, not deleted
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} ResourceResponse
// @Router /reservations/{id} [delete]
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	user := utils.GetUser(c)

	var reservation models.Reservation
	if err := rc.DB.Where("id = ?", c.Param("id")).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	if reservation.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own reservations"})
		return
	}

	if reservation.Status == models.ReservationCancelled {
		RespondValidationError(c, "status", "Reservation is already cancelled")
		return
	}

	if err := rc.DB.Model(&reservation).Update("status", models.ReservationCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		return
	}

	c.JSON(http.StatusOK, ResourceResponse{Data: reservation})
}
