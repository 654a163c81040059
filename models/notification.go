package models

import "time"

type Notification struct {
	NotificationID uint      `json:"notification_id" gorm:"primaryKey"`
	RID            string    `json:"rid" gorm:"uniqueIndex;size:64"`
	UserID         *uint     `json:"user_id" gorm:"index"`
	OrderID        *uint     `json:"order_id" gorm:"index"`
	Type           string    `json:"type" gorm:"size:50;not null"`
	Message        string    `json:"message" gorm:"size:500;not null"`
	IsRead         bool      `json:"is_read" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
}
