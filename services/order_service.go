package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/models"
	"restaurant-management-api/statemachine"
	"restaurant-management-api/utils"
)

type OrderService struct {
	db            *gorm.DB
	audit         *AuditService
	notifications *NotificationService
	log           zerolog.Logger
}

func NewOrderService(db *gorm.DB, audit *AuditService, notifications *NotificationService, log zerolog.Logger) *OrderService {
	return &OrderService{db: db, audit: audit, notifications: notifications, log: log}
}

type CreateOrderInput struct {
	BranchID *uint
	TableID  *uint
	Notes    string
}

type OrderFilters struct {
	Status   models.OrderStatus
	BranchID *uint
	UserID   *uint
	DateFrom *time.Time
	DateTo   *time.Time
}

type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int64          `json:"total_pages"`
}

type OrderStatistics struct {
	Total        int64                        `json:"total"`
	ByStatus     map[models.OrderStatus]int64 `json:"by_status"`
	TotalRevenue float64                      `json:"total_revenue"`
}

// CreateOrder opens a pending order with zero total and no items. Items are
// added afterwards via AddOrderItem.
func (s *OrderService) CreateOrder(userID uint, input CreateOrderInput) (*models.Order, error) {
	if input.BranchID != nil {
		var branch models.Branch
		if err := s.db.Where("branch_id = ?", *input.BranchID).First(&branch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("branch not found")
			}
			return nil, err
		}
	}
	if input.TableID != nil {
		var table models.Table
		if err := s.db.Where("table_id = ?", *input.TableID).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("table not found")
			}
			return nil, err
		}
	}

	order := models.Order{
		RID:         utils.GenerateRID(utils.PrefixOrder),
		UserID:      userID,
		BranchID:    input.BranchID,
		TableID:     input.TableID,
		Status:      models.StatusPending,
		Notes:       input.Notes,
		TotalAmount: 0,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info().Uint("order_id", order.OrderID).Uint("user_id", userID).Msg("order created")
	return &order, nil
}

// GetOrderByID fetches an order with its items and customer.
func (s *OrderService) GetOrderByID(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items.MenuItem").
		Preload("User").
		Preload("Branch").
		Preload("Table").
		Where("order_id = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}

func applyOrderFilters(q *gorm.DB, filters OrderFilters) *gorm.DB {
	if filters.Status != "" {
		q = q.Where("order_status = ?", filters.Status)
	}
	if filters.BranchID != nil {
		q = q.Where("branch_id = ?", *filters.BranchID)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.DateFrom != nil {
		q = q.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("created_at <= ?", *filters.DateTo)
	}
	return q
}

// ListOrders returns a filtered, paginated order listing.
func (s *OrderService) ListOrders(page, limit int, filters OrderFilters) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := applyOrderFilters(s.db.Model(&models.Order{}), filters).Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	err := applyOrderFilters(s.db.Model(&models.Order{}), filters).
		Preload("Items").
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &OrderPage{Orders: orders, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

// GetUserOrders lists a single customer's orders.
func (s *OrderService) GetUserOrders(userID uint, page, limit int) (*OrderPage, error) {
	return s.ListOrders(page, limit, OrderFilters{UserID: &userID})
}

// AddOrderItem appends a line item, capturing the menu item's current price
// as the immutable unit price. Adding the same item again accumulates into
// the existing row instead of duplicating it. Runs in a per-order
// transaction together with the total recomputation.
func (s *OrderService) AddOrderItem(orderID, itemID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	var result models.OrderItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order not found")
			}
			return err
		}

		var menuItem models.MenuItem
		if err := tx.Where("item_id = ?", itemID).First(&menuItem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("menu item not found")
			}
			return err
		}

		var orderItem models.OrderItem
		err := tx.Where("order_id = ? AND item_id = ?", orderID, itemID).First(&orderItem).Error
		switch {
		case err == nil:
			orderItem.Quantity += quantity
			if err := tx.Model(&models.OrderItem{}).
				Where("order_item_id = ?", orderItem.OrderItemID).
				UpdateColumn("quantity", orderItem.Quantity).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			orderItem = models.OrderItem{
				OrderID:   orderID,
				ItemID:    itemID,
				Quantity:  quantity,
				UnitPrice: menuItem.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := s.recalculateTotal(tx, orderID); err != nil {
			return err
		}
		result = orderItem
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrderItemQuantity sets a line item's quantity in place.
func (s *OrderService) UpdateOrderItemQuantity(orderItemID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	var result models.OrderItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var orderItem models.OrderItem
		if err := tx.Where("order_item_id = ?", orderItemID).First(&orderItem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order item not found")
			}
			return err
		}

		orderItem.Quantity = quantity
		if err := tx.Model(&models.OrderItem{}).
			Where("order_item_id = ?", orderItemID).
			UpdateColumn("quantity", quantity).Error; err != nil {
			return err
		}

		if err := s.recalculateTotal(tx, orderItem.OrderID); err != nil {
			return err
		}
		result = orderItem
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveOrderItem deletes a line item.
func (s *OrderService) RemoveOrderItem(orderItemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var orderItem models.OrderItem
		if err := tx.Where("order_item_id = ?", orderItemID).First(&orderItem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order item not found")
			}
			return err
		}

		if err := tx.Delete(&models.OrderItem{}, orderItemID).Error; err != nil {
			return err
		}

		return s.recalculateTotal(tx, orderItem.OrderID)
	})
}

// recalculateTotal refreshes total_amount as the full sum over the current
// item set. Always a fresh sum, never an incremental delta, so the invariant
// cannot drift.
func (s *OrderService) recalculateTotal(tx *gorm.DB, orderID uint) error {
	var total float64
	err := tx.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		UpdateColumn("total_amount", total).Error
}

// RecalculateOrderTotal recomputes and persists the total, returning it.
func (s *OrderService) RecalculateOrderTotal(orderID uint) (float64, error) {
	var total float64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order not found")
			}
			return err
		}
		if err := s.recalculateTotal(tx, orderID); err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("order_id = ?", orderID).
			Select("total_amount").
			Scan(&total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateOrderStatus moves an order to any status in the fixed enumeration
// and records who changed what.
func (s *OrderService) UpdateOrderStatus(orderID uint, newStatus models.OrderStatus, ctx AuditContext) (*models.Order, error) {
	if err := statemachine.ValidateTarget(newStatus); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	var order models.Order
	if err := s.db.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}

	oldStatus := order.Status
	if err := s.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		UpdateColumn("order_status", newStatus).Error; err != nil {
		return nil, err
	}

	s.audit.Record("order_status_changed", map[string]any{
		"order_id":   orderID,
		"old_status": string(oldStatus),
		"new_status": string(newStatus),
	}, ctx)

	s.notifications.NotifyOrderStatus(order.UserID, orderID, newStatus)
	s.log.Info().Uint("order_id", orderID).Str("old_status", string(oldStatus)).Str("new_status", string(newStatus)).Msg("order status updated")

	return s.GetOrderByID(orderID)
}

// CancelOrder is the guarded transition to cancelled. Completed and already
// cancelled orders are terminal and stay that way.
func (s *OrderService) CancelOrder(orderID uint, ctx AuditContext) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}

	if err := statemachine.CanCancel(order.Status); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	if err := s.db.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		UpdateColumn("order_status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}

	s.audit.Record("order_cancelled", map[string]any{
		"order_id":   orderID,
		"old_status": string(order.Status),
	}, ctx)
	s.notifications.NotifyOrderStatus(order.UserID, orderID, models.StatusCancelled)

	order.Status = models.StatusCancelled
	return &order, nil
}

// GetOrderStatistics aggregates count-by-status and revenue over an optional
// branch and date window. Read-only.
func (s *OrderService) GetOrderStatistics(filters OrderFilters) (*OrderStatistics, error) {
	stats := &OrderStatistics{ByStatus: make(map[models.OrderStatus]int64)}

	if err := applyOrderFilters(s.db.Model(&models.Order{}), filters).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		OrderStatus models.OrderStatus
		Count       int64
	}
	var rows []statusCount
	err := applyOrderFilters(s.db.Model(&models.Order{}), filters).
		Select("order_status, COUNT(order_id) as count").
		Group("order_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByStatus[row.OrderStatus] = row.Count
	}

	err = applyOrderFilters(s.db.Model(&models.Order{}), filters).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
