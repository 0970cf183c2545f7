package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/services"
)

// LeaveTypeHandler handles absence category requests.
type LeaveTypeHandler struct {
	leaveTypeService services.LeaveTypeServicer
	vaultService     services.VaultServicer
}

// NewLeaveTypeHandler creates a new LeaveTypeHandler.
func NewLeaveTypeHandler(leaveTypeService services.LeaveTypeServicer, vaultService services.VaultServicer) *LeaveTypeHandler {
	return &LeaveTypeHandler{leaveTypeService: leaveTypeService, vaultService: vaultService}
}

// CreateLeaveTypeRequest represents the request payload for creating a leave type.
type CreateLeaveTypeRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Icon         string `json:"icon" binding:"max=16"`
	IsDeductible bool   `json:"is_deductible"`
	Allowance    *int   `json:"allowance" binding:"omitempty,gte=0,lte=365"`
}

// UpdateLeaveTypeRequest represents the request payload for updating a leave type.
type UpdateLeaveTypeRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Icon         *string `json:"icon" binding:"omitempty,max=16"`
	IsDeductible *bool   `json:"is_deductible"`
	Allowance    *int    `json:"allowance" binding:"omitempty,gte=0,lte=365"`
}

// CreateLeaveType adds an absence category
// @Summary     Create leave type
// @Tags        leave-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLeaveTypeRequest true "Leave type details"
// @Success     201 {object} models.LeaveType "Leave type created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /leave-types [post]
func (h *LeaveTypeHandler) CreateLeaveType(c *gin.Context) {
	var req CreateLeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	lt, err := h.leaveTypeService.Create(req.Name, req.Icon, req.IsDeductible, req.Allowance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusCreated, gin.H{"leave_type": lt})
}

// ListLeaveTypes returns all absence categories
// @Summary     List leave types
// @Tags        leave-types
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.LeaveType "Leave types"
// @Router      /leave-types [get]
func (h *LeaveTypeHandler) ListLeaveTypes(c *gin.Context) {
	types, err := h.leaveTypeService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leave_types": types})
}

// UpdateLeaveType edits an absence category
// @Summary     Update leave type
// @Tags        leave-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Leave type ID"
// @Param       request body UpdateLeaveTypeRequest true "Changed fields"
// @Success     200 {object} models.LeaveType "Updated leave type"
// @Failure     404 {object} ErrorResponse "Leave type not found"
// @Router      /leave-types/{id} [put]
func (h *LeaveTypeHandler) UpdateLeaveType(c *gin.Context) {
	var req UpdateLeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	lt, err := h.leaveTypeService.Update(c.Param("id"), req.Name, req.Icon, req.IsDeductible, req.Allowance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"leave_type": lt})
}

// DeleteLeaveType removes an absence category
// @Summary     Delete leave type
// @Description Remove a leave type; existing requests that reference it fall back to the generic category
// @Tags        leave-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Leave type ID"
// @Success     200 {object} MessageResponse "Leave type deleted"
// @Failure     404 {object} ErrorResponse "Leave type not found"
// @Router      /leave-types/{id} [delete]
func (h *LeaveTypeHandler) DeleteLeaveType(c *gin.Context) {
	if err := h.leaveTypeService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Leave type deleted successfully"})
}
