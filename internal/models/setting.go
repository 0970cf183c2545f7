package models

// Setting is a workspace-level key-value entry, such as the linked
// cloud-vault identifier.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// SettingVaultID is the settings key holding the linked vault identifier.
const SettingVaultID = "cloud_vault_id"
