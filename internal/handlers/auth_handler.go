package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/middleware"
	"vacationly/internal/services"
)

// AuthHandler handles authentication and own-profile requests.
type AuthHandler struct {
	employeeService services.EmployeeServicer
	balanceService  services.BalanceServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(employeeService services.EmployeeServicer, balanceService services.BalanceServicer) *AuthHandler {
	return &AuthHandler{employeeService: employeeService, balanceService: balanceService}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ResetPasswordRequest represents the password reset payload.
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required,max=100"`
	NewPassword string `json:"new_password" binding:"required,min=4,max=128"`
}

// UpdateProfileRequest represents the fields an employee may change on
// their own record.
type UpdateProfileRequest struct {
	Email               *string `json:"email" binding:"omitempty,email,max=255"`
	Phone               *string `json:"phone" binding:"omitempty,max=50"`
	StatusMessage       *string `json:"status_message" binding:"omitempty,max=255"`
	NotifyReminders     *bool   `json:"notify_reminders"`
	NotifyStatusUpdates *bool   `json:"notify_status_updates"`
	NotifyPolicyUpdates *bool   `json:"notify_policy_updates"`
}

// TokenResponse represents an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates an employee and issues a token pair
// @Summary     Login
// @Description Authenticate with username and password and get access and refresh tokens
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} TokenResponse "Tokens issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	emp, err := h.employeeService.AttemptLogin(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accessToken, err := middleware.GenerateAccessToken(emp)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(emp)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	if err := h.employeeService.StoreRefreshTokenHash(emp.ID, middleware.HashToken(refreshToken)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"employee":      emp,
	})
}

// Refresh rotates a refresh token into a fresh token pair
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new access and refresh token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} TokenResponse "Tokens rotated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid or revoked refresh token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	// Only the most recently issued refresh token is honored.
	storedHash, err := h.employeeService.GetRefreshTokenHash(claims.EmployeeID)
	if err != nil || storedHash == "" || storedHash != middleware.HashToken(req.RefreshToken) {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	emp, err := h.employeeService.GetByID(claims.EmployeeID)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	accessToken, err := middleware.GenerateAccessToken(emp)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(emp)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	if err := h.employeeService.StoreRefreshTokenHash(emp.ID, middleware.HashToken(refreshToken)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// ResetPassword replaces an employee's password
// @Summary     Reset password
// @Description Set a new password for the given username
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ResetPasswordRequest true "Username and new password"
// @Success     200 {object} MessageResponse "Password updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.employeeService.ResetPassword(req.Username, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// GetProfile returns the authenticated employee's record
// @Summary     Get own profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Employee "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	emp, err := h.employeeService.GetByID(employeeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": emp})
}

// UpdateProfile updates the authenticated employee's own fields
// @Summary     Update own profile
// @Description Update contact details, status message, and notification settings
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile changes"
// @Success     200 {object} models.Employee "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	emp, err := h.employeeService.UpdateProfile(employeeID, services.ProfileUpdate{
		Email:               req.Email,
		Phone:               req.Phone,
		StatusMessage:       req.StatusMessage,
		NotifyReminders:     req.NotifyReminders,
		NotifyStatusUpdates: req.NotifyStatusUpdates,
		NotifyPolicyUpdates: req.NotifyPolicyUpdates,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": emp})
}

// GetProfileStats returns the authenticated employee's leave balance
// @Summary     Get own leave balance
// @Description Total allowance, used deductible days, and pending days
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserStats "Balance statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile/stats [get]
func (h *AuthHandler) GetProfileStats(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.balanceService.StatsFor(employeeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
