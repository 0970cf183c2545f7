package models

// Team is a named grouping of employees.
type Team struct {
	Base
	Name string `gorm:"not null" json:"name"`

	Members []Employee `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}
