package services

import (
	"fmt"
	"log"

	"github.com/work-spot/api-go/models"
	"gorm.io/gorm"
)

// ApprovalService owns the review workflow: offices enter the queue on
// creation and whenever a change invalidates a previous approval.
type ApprovalService struct {
	DB      *gorm.DB
	Gateway NotificationGateway
}

func NewApprovalService(db *gorm.DB, gateway NotificationGateway) *ApprovalService {
	return &ApprovalService{DB: db, Gateway: gateway}
}

// MarkPending resets the office's approval status. db lets callers run the
// write inside their own transaction.
func (s *ApprovalService) MarkPending(db *gorm.DB, office *models.Office) error {
	if office.ApprovalStatus != models.ApprovalPending {
		if err := db.Model(&models.Office{}).Where("id = ?", office.ID).
			Update("approval_status", models.ApprovalPending).Error; err != nil {
			return err
		}
		office.ApprovalStatus = models.ApprovalPending
	}
	return nil
}

// NotifyAdmins sends one notification per administrator for an office
// awaiting review. Dispatch is best-effort: failures are logged and never
// undo the mutation that triggered them. Call only after that mutation has
// been committed.
func (s *ApprovalService) NotifyAdmins(office *models.Office) {
	var admins []models.User
	if err := s.DB.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Printf("Failed to load admins for office %d approval notification: %v", office.ID, err)
		return
	}

	title := "Office pending approval"
	body := fmt.Sprintf("Office #%d (%s) is awaiting review", office.ID, office.Title)

	for _, admin := range admins {
		if err := s.Gateway.Notify(admin.ID, office.ID, models.NotificationOfficePendingApproval, title, body); err != nil {
			log.Printf("Failed to notify admin %d about office %d: %v", admin.ID, office.ID, err)
		}
	}
}
