package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/pagination"
	"vacationly/internal/services"
)

// NotificationHandler handles in-app notification requests.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns notifications visible to the caller
// @Summary     List notifications
// @Description Broadcasts plus notifications targeted at the caller, newest first
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Notification] "Notifications page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.notificationService.ListFor(employeeID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkNotificationRead marks one notification as read
// @Summary     Mark notification read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Notification ID"
// @Success     200 {object} MessageResponse "Notification marked read"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/read [put]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkRead(c.Param("id"), employeeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// ClearNotifications removes the caller's targeted notifications
// @Summary     Clear notifications
// @Description Delete notifications targeted at the caller; broadcasts stay
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Notifications cleared"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.ClearFor(employeeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
