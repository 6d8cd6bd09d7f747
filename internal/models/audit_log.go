package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog is an append-only record of a write made by a user: a
// registration, a login, a token refresh or a transaction change. Changes
// holds the written fields as a JSON object.
type AuditLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `json:"changes,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate assigns a UUIDv7 unless the caller preset one.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	id, err := assignID(a.ID)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}
