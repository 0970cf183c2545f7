package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/pagination"
	"vacationly/internal/services"
)

// BalanceHandler handles the balance-change ledger.
type BalanceHandler struct {
	balanceService services.BalanceServicer
	vaultService   services.VaultServicer
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceService services.BalanceServicer, vaultService services.VaultServicer) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService, vaultService: vaultService}
}

// AddBalanceChangeRequest represents the payload for recording a
// manual balance change. A nil employee_id records an org-wide entry.
type AddBalanceChangeRequest struct {
	EmployeeID  *string `json:"employee_id" binding:"omitempty,max=64"`
	Date        string  `json:"date" binding:"required,iso_date"`
	Description string  `json:"description" binding:"required,min=1,max=500"`
	Type        string  `json:"type" binding:"required,balance_change_type"`
	Amount      int     `json:"amount" binding:"required"`
}

// GetHistory returns the caller's balance-change ledger
// @Summary     Get balance history
// @Description Entries targeted at the caller plus org-wide entries, newest first
// @Tags        balance
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.BalanceChange] "Ledger page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /balance/history [get]
func (h *BalanceHandler) GetHistory(c *gin.Context) {
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

	result, err := h.balanceService.History(employeeID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddChange records a manual balance change
// @Summary     Record balance change
// @Description Record an accrual, deduction, or adjustment for one employee or org-wide
// @Tags        balance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddBalanceChangeRequest true "Change details"
// @Success     201 {object} models.BalanceChange "Change recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /balance/history [post]
func (h *BalanceHandler) AddChange(c *gin.Context) {
	var req AddBalanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	change, err := h.balanceService.AddChange(
		req.EmployeeID,
		req.Date,
		req.Description,
		models.BalanceChangeType(req.Type),
		req.Amount,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusCreated, gin.H{"change": change})
}
