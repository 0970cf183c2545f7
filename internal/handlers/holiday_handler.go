package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/services"
)

// HolidayHandler handles public-holiday calendar requests.
type HolidayHandler struct {
	holidayService services.HolidayServicer
	advisorService services.AdvisorServicer
	vaultService   services.VaultServicer
}

// NewHolidayHandler creates a new HolidayHandler.
func NewHolidayHandler(holidayService services.HolidayServicer, advisorService services.AdvisorServicer, vaultService services.VaultServicer) *HolidayHandler {
	return &HolidayHandler{holidayService: holidayService, advisorService: advisorService, vaultService: vaultService}
}

// CreateHolidayRequest represents the request payload for adding a holiday.
type CreateHolidayRequest struct {
	Date         string `json:"date" binding:"required,iso_date"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	IsDeductible bool   `json:"is_deductible"`
}

// UpdateHolidayRequest represents the request payload for editing a holiday.
type UpdateHolidayRequest struct {
	Date         *string `json:"date" binding:"omitempty,iso_date"`
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	IsDeductible *bool   `json:"is_deductible"`
}

// SyncHolidaysRequest represents the request payload for an external
// holiday sync.
type SyncHolidaysRequest struct {
	Year         *int `json:"year" binding:"omitempty,gte=2000,lte=2100"`
	ApplyUpdates bool `json:"apply_updates"`
}

// CreateHoliday adds a public holiday
// @Summary     Create holiday
// @Tags        holidays
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHolidayRequest true "Holiday details"
// @Success     201 {object} models.PublicHoliday "Holiday created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /holidays [post]
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holiday, err := h.holidayService.Create(req.Date, req.Name, req.IsDeductible)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusCreated, gin.H{"holiday": holiday})
}

// ListHolidays returns the holiday calendar
// @Summary     List holidays
// @Tags        holidays
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Filter by year"
// @Success     200 {array} models.PublicHoliday "Holidays"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Router      /holidays [get]
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		year = &parsed
	}

	holidays, err := h.holidayService.List(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

// UpdateHoliday edits a public holiday
// @Summary     Update holiday
// @Tags        holidays
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holiday ID"
// @Param       request body UpdateHolidayRequest true "Changed fields"
// @Success     200 {object} models.PublicHoliday "Updated holiday"
// @Failure     404 {object} ErrorResponse "Holiday not found"
// @Router      /holidays/{id} [put]
func (h *HolidayHandler) UpdateHoliday(c *gin.Context) {
	var req UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holiday, err := h.holidayService.Update(c.Param("id"), req.Date, req.Name, req.IsDeductible)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"holiday": holiday})
}

// DeleteHoliday removes a public holiday
// @Summary     Delete holiday
// @Tags        holidays
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holiday ID"
// @Success     200 {object} MessageResponse "Holiday deleted"
// @Failure     404 {object} ErrorResponse "Holiday not found"
// @Router      /holidays/{id} [delete]
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	if err := h.holidayService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted successfully"})
}

// SyncHolidays looks up the year's public holidays externally and merges
// them into the calendar
// @Summary     Sync holidays
// @Description Fetch Egypt's public holidays for a year and merge them into the calendar; exact name and date matches update or skip instead of duplicating
// @Tags        holidays
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SyncHolidaysRequest true "Target year and conflict policy"
// @Success     200 {object} services.MergeResult "Merge summary"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     502 {object} ErrorResponse "Holiday lookup unavailable"
// @Router      /holidays/sync [post]
func (h *HolidayHandler) SyncHolidays(c *gin.Context) {
	var req SyncHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	year := time.Now().Year()
	if req.Year != nil {
		year = *req.Year
	}

	candidates, err := h.advisorService.LookupHolidays(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.holidayService.Merge(candidates, req.ApplyUpdates)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"result": result})
}
