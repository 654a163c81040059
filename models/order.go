package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	OrderID     uint        `json:"order_id" gorm:"primaryKey"`
	RID         string      `json:"rid" gorm:"uniqueIndex;size:64"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	User        *User       `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	BranchID    *uint       `json:"branch_id" gorm:"index"`
	Branch      *Branch     `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	TableID     *uint       `json:"table_id"`
	Table       *Table      `json:"table,omitempty" gorm:"foreignKey:TableID"`
	Status      OrderStatus `json:"order_status" gorm:"column:order_status;size:50;not null;default:'pending'"`
	Notes       string      `json:"notes" gorm:"type:text"`
	TotalAmount float64     `json:"total_amount" gorm:"not null;default:0"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	OrderItemID uint      `json:"order_item_id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"not null;uniqueIndex:idx_order_item"`
	ItemID      uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_order_item"`
	MenuItem    *MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity    int       `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   float64   `json:"unit_price" gorm:"not null"` // snapshot of menu price at add time
	Note        string    `json:"note" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
}
