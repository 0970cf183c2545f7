package models

// NotificationType is the severity class of an in-app notification.
type NotificationType string

const (
	NotificationInfo     NotificationType = "info"
	NotificationSuccess  NotificationType = "success"
	NotificationWarning  NotificationType = "warning"
	NotificationReminder NotificationType = "reminder"
)

// Notification is an in-app message produced by the approval workflow.
// A nil TargetEmployeeID means the notification is broadcast to everyone.
// IsEmail records that the action also triggered the external email-style
// side channel (delivery itself is outside this system).
type Notification struct {
	Base
	Title            string           `gorm:"not null" json:"title"`
	Message          string           `gorm:"not null" json:"message"`
	Type             NotificationType `gorm:"size:16;not null" json:"type"`
	Read             bool             `gorm:"default:false" json:"read"`
	TargetEmployeeID *string          `gorm:"type:uuid;index" json:"target_employee_id,omitempty"`
	RelatedRequestID *string          `gorm:"type:uuid" json:"related_request_id,omitempty"`
	IsEmail          bool             `gorm:"default:false" json:"is_email"`
}
