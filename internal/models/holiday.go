package models

// PublicHoliday is a calendar date excluded from business-day counting.
// Dates are keyed by exact YYYY-MM-DD string. IsDeductible lets an
// organization still count the day as used leave when taken.
type PublicHoliday struct {
	Base
	Date         string `gorm:"size:10;not null;index" json:"date"`
	Name         string `gorm:"not null" json:"name"`
	IsDeductible bool   `gorm:"default:false" json:"is_deductible"`
}
