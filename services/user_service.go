package services

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/models"
)

// UserService covers the administrative user operations. Pass-through
// persistence by design.
type UserService struct {
	db    *gorm.DB
	audit *AuditService
	log   zerolog.Logger
}

func NewUserService(db *gorm.DB, audit *AuditService, log zerolog.Logger) *UserService {
	return &UserService{db: db, audit: audit, log: log}
}

type UserPage struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"total_pages"`
}

func (s *UserService) ListUsers(page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := s.db.Preload("Role").
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &UserPage{Users: users, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

func (s *UserService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole reassigns a user's role. The target role must exist and be
// active; the change takes effect for the user on their next token refresh.
func (s *UserService) UpdateUserRole(userID, roleID uint, ctx AuditContext) (*models.User, error) {
	var role models.Role
	if err := s.db.Where("role_id = ?", roleID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("role not found")
		}
		return nil, err
	}
	if !role.IsActive {
		return nil, apperrors.Validation("cannot assign an inactive role")
	}

	res := s.db.Model(&models.User{}).Where("user_id = ?", userID).UpdateColumn("role_id", roleID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("user not found")
	}

	s.audit.Record("role_changed", map[string]any{"user_id": userID, "new_role_id": roleID}, ctx)
	return s.GetUser(userID)
}
