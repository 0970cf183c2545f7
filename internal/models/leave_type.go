package models

// FallbackLeaveTypeName is displayed for requests whose leave type was
// deleted after the request referenced it.
const FallbackLeaveTypeName = "Absence"

// FallbackLeaveTypeIcon is the icon used for dangling leave-type references.
const FallbackLeaveTypeIcon = "📅"

// LeaveType is a category of absence. IsDeductible marks whether approved
// usage subtracts from the employee's annual allowance.
type LeaveType struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	Icon         string `json:"icon"`
	IsDeductible bool   `gorm:"default:false" json:"is_deductible"`
	Allowance    *int   `json:"allowance,omitempty"`
}
