package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/models"
	"restaurant-management-api/utils"
)

// MenuService is thin pass-through persistence for categories and items.
// The one real rule lives in DeleteMenuItem: an item referenced by existing
// order items cannot be removed, so historical orders keep their snapshot
// prices resolvable.
type MenuService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewMenuService(db *gorm.DB, log zerolog.Logger) *MenuService {
	return &MenuService{db: db, log: log}
}

type CategoryInput struct {
	CategoryName string
	Description  string
	IsActive     *bool
}

func (s *MenuService) CreateCategory(input CategoryInput) (*models.MenuCategory, error) {
	if input.CategoryName == "" {
		return nil, apperrors.Validation("category_name is required")
	}
	category := models.MenuCategory{
		RID:          utils.GenerateRID(utils.PrefixCategory),
		CategoryName: input.CategoryName,
		Description:  input.Description,
		IsActive:     true,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (s *MenuService) ListCategories() ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	if err := s.db.Order("category_id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MenuService) UpdateCategory(categoryID uint, input CategoryInput) (*models.MenuCategory, error) {
	var category models.MenuCategory
	if err := s.db.Where("category_id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category not found")
		}
		return nil, err
	}

	updates := map[string]any{}
	if input.CategoryName != "" {
		updates["category_name"] = input.CategoryName
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.MenuCategory{}).Where("category_id = ?", categoryID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Where("category_id = ?", categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *MenuService) DeleteCategory(categoryID uint) error {
	var items int64
	if err := s.db.Model(&models.MenuItem{}).Where("category_id = ?", categoryID).Count(&items).Error; err != nil {
		return err
	}
	if items > 0 {
		return apperrors.Conflict("category still has %d menu item(s)", items)
	}

	res := s.db.Delete(&models.MenuCategory{}, categoryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category not found")
	}
	return nil
}

type MenuItemInput struct {
	CategoryID  *uint
	ItemName    string
	Description string
	Price       *float64
	IsAvailable *bool
}

func (s *MenuService) CreateMenuItem(input MenuItemInput) (*models.MenuItem, error) {
	if input.ItemName == "" {
		return nil, apperrors.Validation("item_name is required")
	}
	if input.Price == nil || *input.Price < 0 {
		return nil, apperrors.Validation("price must be zero or positive")
	}
	if input.CategoryID != nil {
		var category models.MenuCategory
		if err := s.db.Where("category_id = ?", *input.CategoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("category not found")
			}
			return nil, err
		}
	}

	item := models.MenuItem{
		RID:         utils.GenerateRID(utils.PrefixItem),
		CategoryID:  input.CategoryID,
		ItemName:    input.ItemName,
		Description: input.Description,
		Price:       *input.Price,
		IsAvailable: true,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return &item, nil
}

func (s *MenuService) ListMenuItems(categoryID *uint) ([]models.MenuItem, error) {
	q := s.db.Model(&models.MenuItem{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var items []models.MenuItem
	if err := q.Order("item_id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuService) GetMenuItem(itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Preload("Category").Where("item_id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("menu item not found")
		}
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem changes the live menu. Price updates never rewrite the
// snapshot prices already captured on order items.
func (s *MenuService) UpdateMenuItem(itemID uint, input MenuItemInput) (*models.MenuItem, error) {
	if _, err := s.GetMenuItem(itemID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.ItemName != "" {
		updates["item_name"] = input.ItemName
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.Validation("price must be zero or positive")
		}
		updates["price"] = *input.Price
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.MenuItem{}).Where("item_id = ?", itemID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetMenuItem(itemID)
}

// DeleteMenuItem enforces restrict-on-delete against existing order items.
func (s *MenuService) DeleteMenuItem(itemID uint) error {
	if _, err := s.GetMenuItem(itemID); err != nil {
		return err
	}

	var references int64
	if err := s.db.Model(&models.OrderItem{}).Where("item_id = ?", itemID).Count(&references).Error; err != nil {
		return err
	}
	if references > 0 {
		return apperrors.Conflict("menu item is referenced by %d order item(s)", references)
	}

	return s.db.Delete(&models.MenuItem{}, itemID).Error
}
