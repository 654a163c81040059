package models

import "time"

type MenuCategory struct {
	CategoryID   uint      `json:"category_id" gorm:"primaryKey"`
	RID          string    `json:"rid" gorm:"uniqueIndex;size:64"`
	CategoryName string    `json:"category_name" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"size:500"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MenuItem struct {
	ItemID      uint          `json:"item_id" gorm:"primaryKey"`
	RID         string        `json:"rid" gorm:"uniqueIndex;size:64"`
	CategoryID  *uint         `json:"category_id" gorm:"index"`
	Category    *MenuCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ItemName    string        `json:"item_name" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"size:500"`
	Price       float64       `json:"price" gorm:"not null"`
	IsAvailable bool          `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
