package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"vacationly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestEmployee creates an employee with a hashed password and a
// unique username.
func CreateTestEmployee(t *testing.T, db *gorm.DB) *models.Employee {
	t.Helper()
	username := fmt.Sprintf("employee%d", nextID())
	return CreateTestEmployeeWithUsername(t, db, username)
}

// CreateTestEmployeeWithUsername creates an employee with the given username.
// The password is always "password123".
func CreateTestEmployeeWithUsername(t *testing.T, db *gorm.DB, username string) *models.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	emp := &models.Employee{
		Username:       username,
		Password:       string(hash),
		Name:           fmt.Sprintf("Test Employee %d", nextID()),
		Role:           "Specialist",
		Email:          username + "@test.com",
		TotalAllowance: 30,
		IsActive:       true,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}

// CreateTestEmployeeWithManager creates an employee reporting to the
// given manager.
func CreateTestEmployeeWithManager(t *testing.T, db *gorm.DB, managerID string) *models.Employee {
	t.Helper()

	emp := CreateTestEmployee(t, db)
	if err := db.Model(emp).Update("manager_id", managerID).Error; err != nil {
		t.Fatalf("failed to assign manager: %v", err)
	}
	emp.ManagerID = &managerID
	return emp
}

// CreateTestTeam creates a team with a unique name.
func CreateTestTeam(t *testing.T, db *gorm.DB) *models.Team {
	t.Helper()

	team := &models.Team{Name: fmt.Sprintf("Test Team %d", nextID())}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateTestLeaveType creates a leave type.
func CreateTestLeaveType(t *testing.T, db *gorm.DB, name string, isDeductible bool) *models.LeaveType {
	t.Helper()

	lt := &models.LeaveType{
		Name:         name,
		Icon:         "🏖️",
		IsDeductible: isDeductible,
	}
	if err := db.Create(lt).Error; err != nil {
		t.Fatalf("failed to create test leave type: %v", err)
	}
	return lt
}

// CreateTestHoliday creates a public holiday on the given date.
func CreateTestHoliday(t *testing.T, db *gorm.DB, date, name string) *models.PublicHoliday {
	t.Helper()

	holiday := &models.PublicHoliday{Date: date, Name: name}
	if err := db.Create(holiday).Error; err != nil {
		t.Fatalf("failed to create test holiday: %v", err)
	}
	return holiday
}

// CreateTestRequest creates a leave request with the given status and
// day count.
func CreateTestRequest(t *testing.T, db *gorm.DB, emp *models.Employee, typeID string, status models.RequestStatus, days int) *models.LeaveRequest {
	t.Helper()

	request := &models.LeaveRequest{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		TypeID:       typeID,
		StartDate:    "2024-03-03",
		EndDate:      "2024-03-07",
		Status:       status,
		Days:         days,
		SubmittedAt:  time.Now(),
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create test request: %v", err)
	}
	return request
}
