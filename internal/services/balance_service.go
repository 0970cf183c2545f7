package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/pagination"
	"vacationly/internal/workday"
)

// ComputeStats derives an employee's leave balance from their requests
// and the leave-type catalog. Used sums the business days of approved
// requests whose type is deductible; Pending does the same for requests
// still awaiting a decision. A request whose leave type was deleted is
// treated as non-deductible: it stays visible in listings but does not
// count against the allowance.
//
// Pure function of its inputs; the statuses are mutually exclusive so a
// request is never counted in both buckets.
func ComputeStats(allowance int, requests []models.LeaveRequest, typesByID map[string]models.LeaveType) models.UserStats {
	stats := models.UserStats{Total: allowance}
	for _, r := range requests {
		lt, ok := typesByID[r.TypeID]
		if !ok || !lt.IsDeductible {
			continue
		}
		switch r.Status {
		case models.StatusApproved:
			stats.Used += r.Days
		case models.StatusPending, models.StatusHRPending:
			stats.Pending += r.Days
		}
	}
	return stats
}

// balanceService exposes leave statistics and the balance-change ledger.
type balanceService struct {
	db *gorm.DB
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(db *gorm.DB) BalanceServicer {
	return &balanceService{db: db}
}

// StatsFor loads the employee's requests and the leave-type catalog and
// delegates to ComputeStats.
func (s *balanceService) StatsFor(employeeID string) (*models.UserStats, error) {
	var emp models.Employee
	if err := s.db.First(&emp, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var requests []models.LeaveRequest
	if err := s.db.Where("employee_id = ?", emp.ID).Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var types []models.LeaveType
	if err := s.db.Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	typesByID := make(map[string]models.LeaveType, len(types))
	for _, lt := range types {
		typesByID[lt.ID] = lt
	}

	stats := ComputeStats(emp.TotalAllowance, requests, typesByID)
	return &stats, nil
}

// History returns the balance-change ledger visible to the employee:
// their own rows plus org-wide rows (nil employee id), newest first.
func (s *balanceService) History(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.BalanceChange], error) {
	page.Defaults()

	base := s.db.Model(&models.BalanceChange{}).
		Where("employee_id = ? OR employee_id IS NULL", employeeID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var changes []models.BalanceChange
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&changes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(changes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AddChange records a ledger adjustment. A nil employeeID makes the
// entry org-wide.
func (s *balanceService) AddChange(employeeID *string, date, description string, changeType models.BalanceChangeType, amount int) (*models.BalanceChange, error) {
	if _, err := workday.ParseDate(date); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted YYYY-MM-DD")
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}

	change := &models.BalanceChange{
		EmployeeID:  employeeID,
		Date:        date,
		Description: description,
		Type:        changeType,
		Amount:      amount,
	}
	if err := s.db.Create(change).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return change, nil
}
