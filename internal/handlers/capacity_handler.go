package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/services"
)

// CapacityHandler handles team availability views.
type CapacityHandler struct {
	capacityService services.CapacityServicer
}

// NewCapacityHandler creates a new CapacityHandler.
func NewCapacityHandler(capacityService services.CapacityServicer) *CapacityHandler {
	return &CapacityHandler{capacityService: capacityService}
}

func rangeParams(c *gin.Context) (string, string, error) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end query parameters are required")
	}
	return start, end, nil
}

// GetCapacity returns the per-day availability overview
// @Summary     Get capacity overview
// @Description Per-day weekend, holiday, and absence breakdown over a date range (capped at 120 days)
// @Tags        capacity
// @Produce     json
// @Security    BearerAuth
// @Param       start query string true "Range start (YYYY-MM-DD)"
// @Param       end query string true "Range end (YYYY-MM-DD)"
// @Success     200 {array} services.DayCapacity "Days"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /capacity [get]
func (h *CapacityHandler) GetCapacity(c *gin.Context) {
	start, end, err := rangeParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days, err := h.capacityService.Overview(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ExportCapacity downloads the availability overview as CSV
// @Summary     Export capacity CSV
// @Description One row per day, one column per employee, each cell Working, Weekend, Holiday, or the absence status
// @Tags        capacity
// @Produce     text/csv
// @Security    BearerAuth
// @Param       start query string true "Range start (YYYY-MM-DD)"
// @Param       end query string true "Range end (YYYY-MM-DD)"
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /capacity/export [get]
func (h *CapacityHandler) ExportCapacity(c *gin.Context) {
	start, end, err := rangeParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := h.capacityService.ExportCSV(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("capacity_%s_%s.csv", start, end)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}
