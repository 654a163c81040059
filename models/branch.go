package models

import "time"

type Branch struct {
	BranchID   uint      `json:"branch_id" gorm:"primaryKey"`
	RID        string    `json:"rid" gorm:"uniqueIndex;size:64"`
	BranchName string    `json:"branch_name" gorm:"size:255;not null"`
	Address    string    `json:"address" gorm:"size:500"`
	Phone      string    `json:"phone" gorm:"size:20"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Table struct {
	TableID     uint      `json:"table_id" gorm:"primaryKey"`
	RID         string    `json:"rid" gorm:"uniqueIndex;size:64"`
	BranchID    uint      `json:"branch_id" gorm:"not null;index"`
	Branch      *Branch   `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	TableNumber string    `json:"table_number" gorm:"size:20;not null"`
	Seats       int       `json:"seats" gorm:"default:2"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
