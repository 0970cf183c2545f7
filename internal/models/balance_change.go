package models

// BalanceChangeType classifies a ledger adjustment.
type BalanceChangeType string

const (
	BalanceAccrual    BalanceChangeType = "accrual"
	BalanceDeduction  BalanceChangeType = "deduction"
	BalanceAdjustment BalanceChangeType = "adjustment"
)

// BalanceChange is a ledger adjustment independent of leave requests,
// such as the annual accrual. A nil EmployeeID marks an org-wide entry
// visible to everyone.
type BalanceChange struct {
	Base
	EmployeeID  *string           `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Date        string            `gorm:"size:10;not null" json:"date"`
	Description string            `gorm:"not null" json:"description"`
	Type        BalanceChangeType `gorm:"size:16;not null" json:"type"`
	Amount      int               `gorm:"not null" json:"amount"`
}
