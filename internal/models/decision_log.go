package models

// DecisionLog records every approval-workflow decision, including
// re-decisions of an already-decided request and cancellations. The
// request itself only keeps its latest status; this table keeps the
// history.
type DecisionLog struct {
	Base
	RequestID string `gorm:"type:uuid;not null;index" json:"request_id"`
	ActorID   string `gorm:"type:uuid;not null" json:"actor_id"`
	Action    string `gorm:"size:16;not null" json:"action"`
	Note      string `json:"note,omitempty"`
	IPAddress string `gorm:"size:45" json:"ip_address,omitempty"`
}
