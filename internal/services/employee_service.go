package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/pagination"
)

// maxManagerDepth bounds the ancestor walk when validating a manager
// reassignment. The chain can never legitimately be this deep.
const maxManagerDepth = 100

// employeeService handles directory and login business logic.
type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates a new EmployeeServicer.
func NewEmployeeService(db *gorm.DB) EmployeeServicer {
	return &employeeService{db: db}
}

// Create registers a new employee in the directory.
func (s *employeeService) Create(in EmployeeInput) (*models.Employee, error) {
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username, password and name are required")
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))

	var count int64
	s.db.Model(&models.Employee{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	emp := &models.Employee{
		Username:            username,
		Password:            string(hashed),
		Name:                strings.TrimSpace(in.Name),
		Role:                in.Role,
		Email:               in.Email,
		Phone:               in.Phone,
		StatusMessage:       in.StatusMessage,
		TotalAllowance:      30,
		IsAdmin:             in.IsAdmin,
		IsTeamLead:          in.IsTeamLead,
		ManagerID:           in.ManagerID,
		TeamID:              in.TeamID,
		IsActive:            true,
		NotifyReminders:     true,
		NotifyStatusUpdates: true,
		NotifyPolicyUpdates: true,
	}
	if in.TotalAllowance != nil {
		emp.TotalAllowance = *in.TotalAllowance
	}

	if in.ManagerID != nil {
		if _, err := s.GetByID(*in.ManagerID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(emp).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return emp, nil
}

// GetByID retrieves an employee by ID.
func (s *employeeService) GetByID(id string) (*models.Employee, error) {
	var emp models.Employee
	if err := s.db.First(&emp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &emp, nil
}

// GetByUsername retrieves an active employee by username, case-insensitively.
func (s *employeeService) GetByUsername(username string) (*models.Employee, error) {
	var emp models.Employee
	normalized := strings.ToLower(strings.TrimSpace(username))
	if err := s.db.Where("username = ? AND is_active = ?", normalized, true).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &emp, nil
}

// List returns a paginated directory listing.
func (s *employeeService) List(page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error) {
	page.Defaults()

	base := s.db.Model(&models.Employee{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var employees []models.Employee
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(employees, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update applies an admin edit to an employee record. Manager
// reassignments are validated to keep the reporting tree acyclic.
func (s *employeeService) Update(id string, in EmployeeInput) (*models.Employee, error) {
	emp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.ManagerID != nil {
		if err := s.validateManagerChange(id, *in.ManagerID); err != nil {
			return nil, err
		}
	}

	oldName := emp.Name
	updates := map[string]interface{}{
		"manager_id": in.ManagerID,
		"team_id":    in.TeamID,
	}
	if in.Name != "" {
		updates["name"] = strings.TrimSpace(in.Name)
	}
	if in.Role != "" {
		updates["role"] = in.Role
	}
	if in.Email != "" {
		updates["email"] = in.Email
	}
	if in.Phone != "" {
		updates["phone"] = in.Phone
	}
	if in.TotalAllowance != nil {
		updates["total_allowance"] = *in.TotalAllowance
	}
	updates["is_admin"] = in.IsAdmin
	updates["is_team_lead"] = in.IsTeamLead

	if err := s.db.Model(emp).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Keep the denormalized name cache on requests in step with renames.
	if name, ok := updates["name"]; ok && name != oldName {
		if err := s.db.Model(&models.LeaveRequest{}).
			Where("employee_id = ?", emp.ID).
			Update("employee_name", name).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetByID(id)
}

// validateManagerChange rejects self-management and walks the proposed
// manager's ancestor chain to reject reporting cycles.
func (s *employeeService) validateManagerChange(employeeID, newManagerID string) error {
	if newManagerID == employeeID {
		return apperrors.ErrSelfManager
	}

	current := newManagerID
	for i := 0; i < maxManagerDepth; i++ {
		mgr, err := s.GetByID(current)
		if err != nil {
			return err
		}
		if mgr.ManagerID == nil {
			return nil
		}
		if *mgr.ManagerID == employeeID {
			return apperrors.ErrManagerCycle
		}
		current = *mgr.ManagerID
	}
	return apperrors.ErrManagerCycle
}

// UpdateProfile applies a self-service profile edit.
func (s *employeeService) UpdateProfile(id string, in ProfileUpdate) (*models.Employee, error) {
	emp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.StatusMessage != nil {
		updates["status_message"] = *in.StatusMessage
	}
	if in.NotifyReminders != nil {
		updates["notify_reminders"] = *in.NotifyReminders
	}
	if in.NotifyStatusUpdates != nil {
		updates["notify_status_updates"] = *in.NotifyStatusUpdates
	}
	if in.NotifyPolicyUpdates != nil {
		updates["notify_policy_updates"] = *in.NotifyPolicyUpdates
	}

	if len(updates) > 0 {
		if err := s.db.Model(emp).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetByID(id)
}

// Delete removes an employee. Requests keep their denormalized name so
// history remains renderable; manager references of direct reports are
// detached rather than left dangling.
func (s *employeeService) Delete(id string) error {
	emp, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("manager_id = ?", emp.ID).
			Update("manager_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(emp).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AttemptLogin verifies credentials and returns the employee on success.
// Usernames match case-insensitively; passwords against the bcrypt hash.
func (s *employeeService) AttemptLogin(username, password string) (*models.Employee, error) {
	emp, err := s.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmployeeNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(strings.TrimSpace(password))) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return emp, nil
}

// ResetPassword replaces the password for the given username.
func (s *employeeService) ResetPassword(username, newPassword string) error {
	emp, err := s.GetByUsername(username)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(emp).Update("password", string(hashed)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// StoreRefreshTokenHash saves the hash of the employee's current refresh token.
func (s *employeeService) StoreRefreshTokenHash(employeeID, tokenHash string) error {
	if err := s.db.Model(&models.Employee{}).
		Where("id = ?", employeeID).
		Update("refresh_token_hash", tokenHash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh-token hash for the employee.
func (s *employeeService) GetRefreshTokenHash(employeeID string) (string, error) {
	emp, err := s.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	return emp.RefreshTokenHash, nil
}

// OrgChart returns the directory grouped by team. Employees without a
// team are grouped under a nil team entry at the end.
func (s *employeeService) OrgChart() ([]OrgChartTeam, error) {
	var teams []models.Team
	if err := s.db.Order("name").Find(&teams).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var employees []models.Employee
	if err := s.db.Order("name").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byTeam := make(map[string][]models.Employee)
	var unassigned []models.Employee
	for _, emp := range employees {
		if emp.TeamID == nil {
			unassigned = append(unassigned, emp)
			continue
		}
		byTeam[*emp.TeamID] = append(byTeam[*emp.TeamID], emp)
	}

	chart := make([]OrgChartTeam, 0, len(teams)+1)
	for i := range teams {
		team := teams[i]
		chart = append(chart, OrgChartTeam{Team: &team, Members: byTeam[team.ID]})
	}
	if len(unassigned) > 0 {
		chart = append(chart, OrgChartTeam{Team: nil, Members: unassigned})
	}
	return chart, nil
}
