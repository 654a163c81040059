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

// BranchService is intentionally thin pass-through persistence for branches
// and their tables.
type BranchService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewBranchService(db *gorm.DB, log zerolog.Logger) *BranchService {
	return &BranchService{db: db, log: log}
}

type BranchInput struct {
	BranchName string
	Address    string
	Phone      string
	IsActive   *bool
}

func (s *BranchService) CreateBranch(input BranchInput) (*models.Branch, error) {
	if input.BranchName == "" {
		return nil, apperrors.Validation("branch_name is required")
	}
	branch := models.Branch{
		RID:        utils.GenerateRID(utils.PrefixBranch),
		BranchName: input.BranchName,
		Address:    input.Address,
		Phone:      input.Phone,
		IsActive:   true,
	}
	if err := s.db.Create(&branch).Error; err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return &branch, nil
}

func (s *BranchService) ListBranches() ([]models.Branch, error) {
	var branches []models.Branch
	if err := s.db.Order("branch_id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (s *BranchService) GetBranch(branchID uint) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.Where("branch_id = ?", branchID).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("branch not found")
		}
		return nil, err
	}
	return &branch, nil
}

func (s *BranchService) UpdateBranch(branchID uint, input BranchInput) (*models.Branch, error) {
	if _, err := s.GetBranch(branchID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.BranchName != "" {
		updates["branch_name"] = input.BranchName
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.Branch{}).Where("branch_id = ?", branchID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetBranch(branchID)
}

// DeleteBranch removes a branch with no remaining tables or orders.
func (s *BranchService) DeleteBranch(branchID uint) error {
	if _, err := s.GetBranch(branchID); err != nil {
		return err
	}

	var tables int64
	if err := s.db.Model(&models.Table{}).Where("branch_id = ?", branchID).Count(&tables).Error; err != nil {
		return err
	}
	if tables > 0 {
		return apperrors.Conflict("branch still has %d table(s)", tables)
	}

	var orders int64
	if err := s.db.Model(&models.Order{}).Where("branch_id = ?", branchID).Count(&orders).Error; err != nil {
		return err
	}
	if orders > 0 {
		return apperrors.Conflict("branch is referenced by %d order(s)", orders)
	}

	return s.db.Delete(&models.Branch{}, branchID).Error
}

type TableInput struct {
	BranchID    uint
	TableNumber string
	Seats       int
	IsAvailable *bool
}

func (s *BranchService) CreateTable(input TableInput) (*models.Table, error) {
	if input.TableNumber == "" {
		return nil, apperrors.Validation("table_number is required")
	}
	if _, err := s.GetBranch(input.BranchID); err != nil {
		return nil, err
	}

	seats := input.Seats
	if seats <= 0 {
		seats = 2
	}
	table := models.Table{
		RID:         utils.GenerateRID(utils.PrefixTable),
		BranchID:    input.BranchID,
		TableNumber: input.TableNumber,
		Seats:       seats,
		IsAvailable: true,
	}
	if err := s.db.Create(&table).Error; err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &table, nil
}

func (s *BranchService) ListTables(branchID uint) ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Where("branch_id = ?", branchID).Order("table_id").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *BranchService) UpdateTable(tableID uint, input TableInput) (*models.Table, error) {
	var table models.Table
	if err := s.db.Where("table_id = ?", tableID).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("table not found")
		}
		return nil, err
	}

	updates := map[string]any{}
	if input.TableNumber != "" {
		updates["table_number"] = input.TableNumber
	}
	if input.Seats > 0 {
		updates["seats"] = input.Seats
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.Table{}).Where("table_id = ?", tableID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Where("table_id = ?", tableID).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteTable removes a table that no order references.
func (s *BranchService) DeleteTable(tableID uint) error {
	var table models.Table
	if err := s.db.Where("table_id = ?", tableID).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("table not found")
		}
		return err
	}

	var orders int64
	if err := s.db.Model(&models.Order{}).Where("table_id = ?", tableID).Count(&orders).Error; err != nil {
		return err
	}
	if orders > 0 {
		return apperrors.Conflict("table is referenced by %d order(s)", orders)
	}

	return s.db.Delete(&models.Table{}, tableID).Error
}
