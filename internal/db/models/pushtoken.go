package models

import "time"

// PushToken is a device registration token used for push delivery.
// Tokens reported stale by the push provider are deleted during dispatch.
type PushToken struct {
	// ID is the unique identifier for the token row.
	ID uint `gorm:"primaryKey"`
	// UserID is the user the device belongs to.
	UserID uint64 `gorm:"not null;index"`
	// Token is the provider registration token.
	Token string `gorm:"unique;size:512;not null"`
	// CreatedAt is the timestamp when the token was registered (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the PushToken model.
func (PushToken) TableName() string {
	return "push_tokens"
}
