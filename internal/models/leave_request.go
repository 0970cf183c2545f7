package models

import "time"

// RequestStatus represents the lifecycle state of a leave request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusHRPending RequestStatus = "hr_pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
)

// IsDecided reports whether the status is one of the terminal outcomes.
func (s RequestStatus) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest is the unit of work in the approval workflow.
//
// EmployeeID is the join key to the directory; EmployeeName is kept only
// as a denormalized display cache (the legacy data model joined on the
// name itself, which breaks under renames).
//
// Days is the business-day count of [StartDate, EndDate] at submission
// time, excluding Friday/Saturday weekends and registered public holidays.
type LeaveRequest struct {
	Base
	EmployeeID   string        `gorm:"type:uuid;not null;index" json:"employee_id"`
	EmployeeName string        `gorm:"not null" json:"employee_name"`
	TypeID       string        `gorm:"type:uuid;not null" json:"type_id"`
	StartDate    string        `gorm:"size:10;not null" json:"start_date"`
	EndDate      string        `gorm:"size:10;not null" json:"end_date"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	Days         int           `gorm:"not null" json:"days"`
	SubmittedAt  time.Time     `gorm:"not null" json:"submitted_at"`
	HRRequired   bool          `gorm:"default:false" json:"hr_required"`
	DecisionNote string        `json:"decision_note,omitempty"`
	Attachment   string        `json:"attachment,omitempty"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}
