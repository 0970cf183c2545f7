package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/logger"
)

// getEmployeeID extracts the authenticated employee ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getEmployeeID(c *gin.Context) (string, error) {
	employeeID, exists := c.Get("employeeID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return employeeID.(string), nil
}

// isAdmin reports whether the authenticated employee carries the admin flag.
func isAdmin(c *gin.Context) bool {
	flag, exists := c.Get("isAdmin")
	return exists && flag == true
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
