package models

import "time"

// VaultSnapshot is the simulated remote mirror of the full application
// state, addressed by an opaque vault identifier. Last writer wins; no
// merge is attempted on fetch.
type VaultSnapshot struct {
	VaultID   string    `gorm:"primaryKey;size:64" json:"vault_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
