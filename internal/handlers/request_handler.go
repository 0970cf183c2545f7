package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/pagination"
	"vacationly/internal/services"
)

// RequestHandler handles the leave-request workflow.
type RequestHandler struct {
	requestService services.RequestServicer
	vaultService   services.VaultServicer
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService services.RequestServicer, vaultService services.VaultServicer) *RequestHandler {
	return &RequestHandler{requestService: requestService, vaultService: vaultService}
}

// CreateLeaveRequestRequest represents the submission payload.
type CreateLeaveRequestRequest struct {
	TypeID     string `json:"type_id" binding:"required,max=64"`
	StartDate  string `json:"start_date" binding:"required,iso_date"`
	EndDate    string `json:"end_date" binding:"required,iso_date"`
	Reason     string `json:"reason" binding:"max=1000"`
	Attachment string `json:"attachment" binding:"max=255"`
	HRRequired bool   `json:"hr_required"`
}

// UpdateLeaveRequestRequest represents an admin edit payload.
type UpdateLeaveRequestRequest struct {
	TypeID    *string `json:"type_id" binding:"omitempty,max=64"`
	StartDate *string `json:"start_date" binding:"omitempty,iso_date"`
	EndDate   *string `json:"end_date" binding:"omitempty,iso_date"`
	Reason    *string `json:"reason" binding:"omitempty,max=1000"`
}

// DecideRequestRequest represents an approval decision payload.
type DecideRequestRequest struct {
	Decision string `json:"decision" binding:"required,decision"`
	Note     string `json:"note" binding:"max=1000"`
}

// CreateRequest submits a new leave request
// @Summary     Submit leave request
// @Description Submit a leave request; the day count excludes weekends and public holidays
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLeaveRequestRequest true "Request details"
// @Success     201 {object} models.LeaveRequest "Request submitted"
// @Failure     400 {object} ErrorResponse "Invalid input or no working days in range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.requestService.Create(employeeID, services.CreateRequestInput{
		TypeID:     req.TypeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Attachment: req.Attachment,
		HRRequired: req.HRRequired,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// ListMyRequests returns the caller's requests
// @Summary     List own requests
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.LeaveRequest] "Requests page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /requests [get]
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
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

	result, err := h.requestService.ListForEmployee(employeeID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAllRequests returns requests across the organization
// @Summary     List all requests
// @Description List every leave request, optionally filtered by year, status, employee, or team
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Filter by start-date year"
// @Param       status query string false "Filter by status (pending/hr_pending/approved/rejected)"
// @Param       employee_id query string false "Filter by employee"
// @Param       team_id query string false "Filter by team"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.LeaveRequest] "Requests page"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /requests/all [get]
func (h *RequestHandler) ListAllRequests(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	var filter services.RequestFilter
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		filter.Year = &year
	}
	if raw := c.Query("status"); raw != "" {
		status := models.RequestStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("employee_id"); raw != "" {
		filter.EmployeeID = &raw
	}
	if raw := c.Query("team_id"); raw != "" {
		filter.TeamID = &raw
	}

	result, err := h.requestService.ListAll(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRequest returns a single request
// @Summary     Get request
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Request ID"
// @Success     200 {object} models.LeaveRequest "Request"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Router      /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	request, err := h.requestService.GetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if request.EmployeeID != employeeID && !isAdmin(c) {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// DecideRequest records an approval decision
// @Summary     Decide request
// @Description Approve or reject a leave request and notify the requester; allowed for admins and the requester's direct manager
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Request ID"
// @Param       request body DecideRequestRequest true "Decision and optional note"
// @Success     200 {object} MessageResponse "Decision recorded"
// @Failure     400 {object} ErrorResponse "Invalid decision"
// @Failure     403 {object} ErrorResponse "Not the requester's manager"
// @Router      /requests/{id}/decide [post]
func (h *RequestHandler) DecideRequest(c *gin.Context) {
	actorID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DecideRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	outcome := models.StatusRejected
	if req.Decision == "approved" {
		outcome = models.StatusApproved
	}

	if err := h.requestService.Decide(c.Param("id"), actorID, isAdmin(c), outcome, req.Note, c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Decision recorded"})
}

// CancelRequest withdraws the caller's own pending request
// @Summary     Cancel request
// @Description Withdraw a pending request; decided requests cannot be cancelled
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Request ID"
// @Success     200 {object} MessageResponse "Request cancelled"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     409 {object} ErrorResponse "Request already decided"
// @Router      /requests/{id}/cancel [post]
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.requestService.Cancel(c.Param("id"), employeeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// UpdateRequest edits a request's dates, type, or reason
// @Summary     Update request
// @Description Edit a request; changing the dates recomputes the business-day count
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Request ID"
// @Param       request body UpdateLeaveRequestRequest true "Changed fields"
// @Success     200 {object} models.LeaveRequest "Updated request"
// @Failure     400 {object} ErrorResponse "Invalid input or no working days in range"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     404 {object} ErrorResponse "Request not found"
// @Router      /requests/{id} [put]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var req UpdateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.requestService.Update(c.Param("id"), services.UpdateRequestInput{
		TypeID:    req.TypeID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"request": request})
}

// DeleteRequest removes a request regardless of status
// @Summary     Delete request
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Request ID"
// @Success     200 {object} MessageResponse "Request deleted"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /requests/{id} [delete]
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	actorID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.requestService.AdminDelete(c.Param("id"), actorID); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}

// GetDecisionHistory returns the decision audit trail for a request
// @Summary     Get decision history
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Request ID"
// @Success     200 {array} models.DecisionLog "Decision entries"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /requests/{id}/history [get]
func (h *RequestHandler) GetDecisionHistory(c *gin.Context) {
	history, err := h.requestService.DecisionHistory(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
