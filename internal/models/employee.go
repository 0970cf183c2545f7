package models

// Employee represents a person in the company directory.
// ManagerID is a self-referential pointer forming the reporting tree;
// reassignments are validated to stay acyclic in the employee service.
type Employee struct {
	Base
	Username       string  `gorm:"uniqueIndex;not null" json:"username"`
	Password       string  `gorm:"not null" json:"-"`
	Name           string  `gorm:"not null" json:"name"`
	Role           string  `json:"role"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	StatusMessage  string  `json:"status,omitempty"`
	TotalAllowance int     `gorm:"default:30" json:"total_allowance"`
	IsAdmin        bool    `gorm:"default:false" json:"is_admin"`
	IsTeamLead     bool    `gorm:"default:false" json:"is_team_lead"`
	ManagerID      *string `gorm:"type:uuid" json:"manager_id,omitempty"`
	TeamID         *string `gorm:"type:uuid" json:"team_id,omitempty"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`

	// Notification preferences
	NotifyReminders     bool `gorm:"default:true" json:"notify_reminders"`
	NotifyStatusUpdates bool `gorm:"default:true" json:"notify_status_updates"`
	NotifyPolicyUpdates bool `gorm:"default:true" json:"notify_policy_updates"`

	RefreshTokenHash string `gorm:"size:64" json:"-"`

	// Relationships
	Manager *Employee  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Reports []Employee `gorm:"foreignKey:ManagerID" json:"reports,omitempty"`
	Team    *Team      `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// UserStats holds the derived leave balance for one employee.
// Used counts approved deductible requests; Pending counts requests
// still awaiting a decision. Never stored.
type UserStats struct {
	Total   int `json:"total"`
	Used    int `json:"used"`
	Pending int `json:"pending"`
}
