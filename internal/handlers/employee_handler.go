package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/pagination"
	"vacationly/internal/services"
)

// EmployeeHandler handles directory administration requests.
type EmployeeHandler struct {
	employeeService services.EmployeeServicer
	vaultService    services.VaultServicer
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService services.EmployeeServicer, vaultService services.VaultServicer) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, vaultService: vaultService}
}

// EmployeeRequest represents the request payload for creating or
// replacing an employee record.
type EmployeeRequest struct {
	Username       string  `json:"username" binding:"required,min=2,max=100"`
	Password       string  `json:"password" binding:"omitempty,min=4,max=128"`
	Name           string  `json:"name" binding:"required,min=1,max=200"`
	Role           string  `json:"role" binding:"max=100"`
	Email          string  `json:"email" binding:"omitempty,email,max=255"`
	Phone          string  `json:"phone" binding:"max=50"`
	StatusMessage  string  `json:"status_message" binding:"max=255"`
	TotalAllowance *int    `json:"total_allowance" binding:"omitempty,gte=0,lte=365"`
	IsAdmin        bool    `json:"is_admin"`
	IsTeamLead     bool    `json:"is_team_lead"`
	ManagerID      *string `json:"manager_id"`
	TeamID         *string `json:"team_id"`
}

func (r *EmployeeRequest) toInput() services.EmployeeInput {
	return services.EmployeeInput{
		Username:       r.Username,
		Password:       r.Password,
		Name:           r.Name,
		Role:           r.Role,
		Email:          r.Email,
		Phone:          r.Phone,
		StatusMessage:  r.StatusMessage,
		TotalAllowance: r.TotalAllowance,
		IsAdmin:        r.IsAdmin,
		IsTeamLead:     r.IsTeamLead,
		ManagerID:      r.ManagerID,
		TeamID:         r.TeamID,
	}
}

// CreateEmployee adds an employee to the directory
// @Summary     Create employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EmployeeRequest true "Employee details"
// @Success     201 {object} models.Employee "Employee created"
// @Failure     400 {object} ErrorResponse "Invalid input or manager cycle"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     409 {object} ErrorResponse "Username already taken"
// @Router      /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	emp, err := h.employeeService.Create(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusCreated, gin.H{"employee": emp})
}

// ListEmployees returns the directory
// @Summary     List employees
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Employee] "Directory page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.employeeService.List(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEmployee returns a single employee record
// @Summary     Get employee
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} models.Employee "Employee"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.employeeService.GetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": emp})
}

// UpdateEmployee replaces an employee's directory fields
// @Summary     Update employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Param       request body EmployeeRequest true "Employee details"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input or manager cycle"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	emp, err := h.employeeService.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"employee": emp})
}

// DeleteEmployee removes an employee from the directory
// @Summary     Delete employee
// @Description Remove an employee; their reports are detached, not deleted
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} MessageResponse "Employee deleted"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Router      /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// GetOrgChart returns the directory grouped by team
// @Summary     Get org chart
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.OrgChartTeam "Teams with members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /employees/orgchart [get]
func (h *EmployeeHandler) GetOrgChart(c *gin.Context) {
	chart, err := h.employeeService.OrgChart()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": chart})
}
