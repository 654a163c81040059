package models

import "time"

// AuditLog is an append-only record of security-relevant actions.
// Writes are fire-and-forget and never abort the primary operation.
type AuditLog struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    *uint          `json:"user_id" gorm:"index"`
	Action    string         `json:"action" gorm:"size:100;not null"`
	Details   map[string]any `json:"details" gorm:"serializer:json"`
	IPAddress string         `json:"ip_address" gorm:"size:45"`
	UserAgent string         `json:"user_agent" gorm:"size:500"`
	CreatedAt time.Time      `json:"created_at"`
}
