package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/services"
)

type MenuHandler struct {
	svc *services.MenuService
}

func NewMenuHandler(svc *services.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

type CategoryRequest struct {
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
}

type MenuItemRequest struct {
	CategoryID  *uint    `json:"category_id"`
	ItemName    string   `json:"item_name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"is_available"`
}

func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	category, err := h.svc.CreateCategory(services.CategoryInput{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created", gin.H{"category": category})
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Categories fetched", gin.H{"categories": categories, "count": len(categories)})
}

func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	category, err := h.svc.UpdateCategory(categoryID, services.CategoryInput{
		CategoryName: req.CategoryName,
		Description:  req.Description,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category updated", gin.H{"category": category})
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(categoryID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category deleted", nil)
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	item, err := h.svc.CreateMenuItem(services.MenuItemInput{
		CategoryID:  req.CategoryID,
		ItemName:    req.ItemName,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Menu item created", gin.H{"item": item})
}

func (h *MenuHandler) ListMenuItems(c *gin.Context) {
	var categoryID *uint
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			parsed := uint(id)
			categoryID = &parsed
		}
	}
	items, err := h.svc.ListMenuItems(categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu items fetched", gin.H{"items": items, "count": len(items)})
}

func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.svc.GetMenuItem(itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item fetched", gin.H{"item": item})
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	item, err := h.svc.UpdateMenuItem(itemID, services.MenuItemInput{
		CategoryID:  req.CategoryID,
		ItemName:    req.ItemName,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item updated", gin.H{"item": item})
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteMenuItem(itemID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item deleted", nil)
}
