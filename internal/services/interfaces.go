package services

import (
	"vacationly/internal/models"
	"vacationly/internal/pagination"
)

// EmployeeInput carries the writable fields of an employee record.
type EmployeeInput struct {
	Username       string
	Password       string
	Name           string
	Role           string
	Email          string
	Phone          string
	StatusMessage  string
	TotalAllowance *int
	IsAdmin        bool
	IsTeamLead     bool
	ManagerID      *string
	TeamID         *string
}

// ProfileUpdate carries the fields an employee may change on their own record.
type ProfileUpdate struct {
	Email               *string
	Phone               *string
	StatusMessage       *string
	NotifyReminders     *bool
	NotifyStatusUpdates *bool
	NotifyPolicyUpdates *bool
}

// EmployeeServicer defines the contract for directory and login logic.
type EmployeeServicer interface {
	Create(in EmployeeInput) (*models.Employee, error)
	GetByID(id string) (*models.Employee, error)
	GetByUsername(username string) (*models.Employee, error)
	List(page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error)
	Update(id string, in EmployeeInput) (*models.Employee, error)
	UpdateProfile(id string, in ProfileUpdate) (*models.Employee, error)
	Delete(id string) error
	AttemptLogin(username, password string) (*models.Employee, error)
	ResetPassword(username, newPassword string) error
	StoreRefreshTokenHash(employeeID, tokenHash string) error
	GetRefreshTokenHash(employeeID string) (string, error)
	OrgChart() ([]OrgChartTeam, error)
}

// TeamServicer defines the contract for team grouping logic.
type TeamServicer interface {
	Create(name string) (*models.Team, error)
	List() ([]models.Team, error)
	Update(id, name string) (*models.Team, error)
	Delete(id string) error
}

// LeaveTypeServicer defines the contract for absence categories.
type LeaveTypeServicer interface {
	Create(name, icon string, isDeductible bool, allowance *int) (*models.LeaveType, error)
	List() ([]models.LeaveType, error)
	GetByID(id string) (*models.LeaveType, error)
	Update(id string, name, icon *string, isDeductible *bool, allowance *int) (*models.LeaveType, error)
	Delete(id string) error
}

// HolidayCandidate is an externally-looked-up holiday before merging.
type HolidayCandidate struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// MergeResult summarizes a holiday sync merge.
type MergeResult struct {
	Added     int                `json:"added"`
	Updated   int                `json:"updated"`
	Skipped   int                `json:"skipped"`
	Conflicts []HolidayCandidate `json:"conflicts"`
}

// HolidayServicer defines the contract for the public-holiday calendar.
type HolidayServicer interface {
	Create(date, name string, isDeductible bool) (*models.PublicHoliday, error)
	List(year *int) ([]models.PublicHoliday, error)
	Update(id string, date, name *string, isDeductible *bool) (*models.PublicHoliday, error)
	Delete(id string) error
	Merge(candidates []HolidayCandidate, applyUpdates bool) (*MergeResult, error)
}

// RequestFilter holds optional filter parameters for listing leave requests.
type RequestFilter struct {
	Year       *int
	Status     *models.RequestStatus
	EmployeeID *string
	TeamID     *string
}

// CreateRequestInput carries a new leave request submission.
type CreateRequestInput struct {
	TypeID     string
	StartDate  string
	EndDate    string
	Reason     string
	Attachment string
	HRRequired bool
}

// UpdateRequestInput carries an admin edit of an existing request.
type UpdateRequestInput struct {
	TypeID    *string
	StartDate *string
	EndDate   *string
	Reason    *string
}

// RequestServicer defines the contract for the approval workflow.
type RequestServicer interface {
	Create(employeeID string, in CreateRequestInput) (*models.LeaveRequest, error)
	GetByID(id string) (*models.LeaveRequest, error)
	ListForEmployee(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.LeaveRequest], error)
	ListAll(filter RequestFilter, page pagination.PageRequest) (*pagination.PageResponse[models.LeaveRequest], error)
	Decide(requestID, actorID string, actorIsAdmin bool, outcome models.RequestStatus, note, ip string) error
	Cancel(requestID, ownerID string) error
	AdminDelete(requestID, actorID string) error
	Update(requestID string, in UpdateRequestInput) (*models.LeaveRequest, error)
	DecisionHistory(requestID string) ([]models.DecisionLog, error)
}

// BalanceServicer defines the contract for leave-balance statistics and
// the balance-change ledger.
type BalanceServicer interface {
	StatsFor(employeeID string) (*models.UserStats, error)
	History(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.BalanceChange], error)
	AddChange(employeeID *string, date, description string, changeType models.BalanceChangeType, amount int) (*models.BalanceChange, error)
}

// NotificationServicer defines the contract for in-app notifications.
type NotificationServicer interface {
	ListFor(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	MarkRead(id, employeeID string) error
	ClearFor(employeeID string) error
}

// Absence describes one employee being away on a given day.
type Absence struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"`
	Icon         string `json:"icon"`
	Reason       string `json:"reason,omitempty"`
}

// DayCapacity characterizes one calendar day for capacity planning.
type DayCapacity struct {
	Date      string                `json:"date"`
	Weekday   string                `json:"weekday"`
	IsWeekend bool                  `json:"is_weekend"`
	Holiday   *models.PublicHoliday `json:"holiday,omitempty"`
	Absences  []Absence             `json:"absences"`
	Count     int                   `json:"count"`
}

// CapacityServicer defines the contract for team availability views.
type CapacityServicer interface {
	Overview(startDate, endDate string) ([]DayCapacity, error)
	ExportCSV(startDate, endDate string) ([]byte, error)
}

// VaultStatus reports the linked vault and its last sync time.
type VaultStatus struct {
	VaultID    string `json:"vault_id,omitempty"`
	LastSynced string `json:"last_synced,omitempty"`
	Linked     bool   `json:"linked"`
}

// VaultServicer defines the contract for the simulated cloud mirror.
type VaultServicer interface {
	Init() (string, error)
	Connect(vaultID string) error
	Push() error
	Fetch(vaultID string) error
	Status() (*VaultStatus, error)
	MarkDirty()
}

// AdvisorServicer defines the contract for the external AI collaborators.
type AdvisorServicer interface {
	Advise(query string, stats models.UserStats, requests []models.LeaveRequest, leaveTypes []models.LeaveType) string
	LookupHolidays(year int) ([]HolidayCandidate, error)
}

// OrgChartTeam groups directory entries by team for the org chart view.
type OrgChartTeam struct {
	Team    *models.Team      `json:"team"`
	Members []models.Employee `json:"members"`
}
