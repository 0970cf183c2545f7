package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/pagination"
	"vacationly/internal/services"
)

// advisorHistoryDepth bounds how much request history is fed into the
// chat context.
const advisorHistoryDepth = 100

// AdvisorHandler handles AI planning chat requests.
type AdvisorHandler struct {
	advisorService   services.AdvisorServicer
	balanceService   services.BalanceServicer
	requestService   services.RequestServicer
	leaveTypeService services.LeaveTypeServicer
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(
	advisorService services.AdvisorServicer,
	balanceService services.BalanceServicer,
	requestService services.RequestServicer,
	leaveTypeService services.LeaveTypeServicer,
) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService:   advisorService,
		balanceService:   balanceService,
		requestService:   requestService,
		leaveTypeService: leaveTypeService,
	}
}

// ChatRequest represents a planning question.
type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

// ChatResponse represents the advisor's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a leave-planning question
// @Summary     Ask the planning advisor
// @Description Ask a free-form question; the caller's balance, request history, and the configured leave types are provided as context. Advisory only, no state changes.
// @Tags        advisor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Question"
// @Success     200 {object} ChatResponse "Reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /advisor/chat [post]
func (h *AdvisorHandler) Chat(c *gin.Context) {
	employeeID, err := getEmployeeID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stats, err := h.balanceService.StatsFor(employeeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	history, err := h.requestService.ListForEmployee(employeeID, pagination.PageRequest{Page: 1, PageSize: advisorHistoryDepth})
	if err != nil {
		respondWithError(c, err)
		return
	}

	leaveTypes, err := h.leaveTypeService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	reply := h.advisorService.Advise(req.Message, *stats, history.Data, leaveTypes)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
