package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/pagination"
)

// notificationService exposes workflow-produced notifications.
// Notifications are only ever created by the workflow itself.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// ListFor returns notifications visible to the employee: targeted ones
// plus broadcasts (nil target), newest first.
func (s *notificationService) ListFor(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.Model(&models.Notification{}).
		Where("target_employee_id = ? OR target_employee_id IS NULL", employeeID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notifications, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// MarkRead marks one notification as read, provided it is visible to
// the employee.
func (s *notificationService) MarkRead(id, employeeID string) error {
	var notification models.Notification
	err := s.db.Where("id = ? AND (target_employee_id = ? OR target_employee_id IS NULL)", id, employeeID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&notification).Update("read", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ClearFor removes the employee's targeted notifications. Broadcasts are
// left for other recipients.
func (s *notificationService) ClearFor(employeeID string) error {
	if err := s.db.Unscoped().
		Where("target_employee_id = ?", employeeID).
		Delete(&models.Notification{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
