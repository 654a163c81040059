package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
	"restaurant-management-api/services"
)

type OrderHandler struct {
	svc *services.OrderService
}

func NewOrderHandler(svc *services.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type CreateOrderRequest struct {
	BranchID *uint  `json:"branch_id"`
	TableID  *uint  `json:"table_id"`
	Notes    string `json:"notes"`
}

type AddOrderItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	claims := middleware.GetClaims(c)
	order, err := h.svc.CreateOrder(claims.UserID, services.CreateOrderInput{
		BranchID: req.BranchID,
		TableID:  req.TableID,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Order created successfully", gin.H{"order": order})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.GetOrderByID(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order fetched", gin.H{"order": order})
}

func orderFiltersFromQuery(c *gin.Context) services.OrderFilters {
	filters := services.OrderFilters{
		Status: models.OrderStatus(c.Query("status")),
	}
	if v := c.Query("branch_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			branchID := uint(id)
			filters.BranchID = &branchID
		}
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID := uint(id)
			filters.UserID = &userID
		}
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateTo = &t
		}
	}
	return filters
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := h.svc.ListOrders(page, limit, orderFiltersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Orders fetched", result)
}

// GetMyOrders lists the authenticated customer's own orders.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, limit := pageParams(c)
	result, err := h.svc.GetUserOrders(claims.UserID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Orders fetched", result)
}

func (h *OrderHandler) AddOrderItem(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	item, err := h.svc.AddOrderItem(orderID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Item added to order", gin.H{"order_item": item})
}

func (h *OrderHandler) UpdateOrderItemQuantity(c *gin.Context) {
	orderItemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	item, err := h.svc.UpdateOrderItemQuantity(orderItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Quantity updated", gin.H{"order_item": item})
}

func (h *OrderHandler) RemoveOrderItem(c *gin.Context) {
	orderItemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.svc.RemoveOrderItem(orderItemID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed from order", nil)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order, err := h.svc.UpdateOrderStatus(orderID, req.Status, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order status updated", gin.H{"order": order})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.CancelOrder(orderID, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order cancelled successfully", gin.H{"order": order})
}

func (h *OrderHandler) GetStatistics(c *gin.Context) {
	stats, err := h.svc.GetOrderStatistics(orderFiltersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Statistics fetched", stats)
}
