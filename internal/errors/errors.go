// Package errors provides custom error types for the Vacationly API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAdminRequired      = &AppError{Code: "ADMIN_REQUIRED", Message: "Administrator privileges required", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Employee errors.
var (
	ErrEmployeeNotFound  = &AppError{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "An employee with this username already exists", StatusCode: http.StatusConflict}
	ErrManagerCycle      = &AppError{Code: "MANAGER_CYCLE", Message: "Assigning this manager would create a reporting cycle", StatusCode: http.StatusBadRequest}
	ErrSelfManager       = &AppError{Code: "SELF_MANAGER", Message: "An employee cannot be their own manager", StatusCode: http.StatusBadRequest}
)

// Team errors.
var (
	ErrTeamNotFound = &AppError{Code: "TEAM_NOT_FOUND", Message: "Team not found", StatusCode: http.StatusNotFound}
)

// Leave type errors.
var (
	ErrLeaveTypeNotFound = &AppError{Code: "LEAVE_TYPE_NOT_FOUND", Message: "Leave type not found", StatusCode: http.StatusNotFound}
)

// Holiday errors.
var (
	ErrHolidayNotFound = &AppError{Code: "HOLIDAY_NOT_FOUND", Message: "Public holiday not found", StatusCode: http.StatusNotFound}
)

// Leave request errors.
var (
	ErrRequestNotFound       = &AppError{Code: "REQUEST_NOT_FOUND", Message: "Leave request not found", StatusCode: http.StatusNotFound}
	ErrInvalidRange          = &AppError{Code: "INVALID_RANGE", Message: "The selected range contains no working business days", StatusCode: http.StatusBadRequest}
	ErrRequestNotCancellable = &AppError{Code: "REQUEST_NOT_CANCELLABLE", Message: "Only pending requests can be cancelled", StatusCode: http.StatusConflict}
)

// Vault errors.
var (
	ErrVaultNotFound  = &AppError{Code: "VAULT_NOT_FOUND", Message: "No vault exists with this identifier", StatusCode: http.StatusNotFound}
	ErrVaultNotLinked = &AppError{Code: "VAULT_NOT_LINKED", Message: "No cloud vault is linked to this workspace", StatusCode: http.StatusConflict}
)

// Advisor errors.
var (
	ErrAdvisorUnavailable = &AppError{Code: "ADVISOR_UNAVAILABLE", Message: "Unable to connect to the AI assistant", StatusCode: http.StatusBadGateway}
)
