package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/models"
)

type RoleService struct {
	db    *gorm.DB
	audit *AuditService
	log   zerolog.Logger
}

func NewRoleService(db *gorm.DB, audit *AuditService, log zerolog.Logger) *RoleService {
	return &RoleService{db: db, audit: audit, log: log}
}

type RoleInput struct {
	RoleName    string
	Description string
	Permissions models.PermissionMap
	IsActive    *bool
}

func (s *RoleService) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Order("role_id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) GetRole(roleID uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("role_id = ?", roleID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("role not found")
		}
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) CreateRole(input RoleInput, ctx AuditContext) (*models.Role, error) {
	if input.RoleName == "" {
		return nil, apperrors.Validation("role_name is required")
	}

	var existing models.Role
	err := s.db.Where("role_name = ?", input.RoleName).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("role name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := models.Role{
		RoleName:    input.RoleName,
		Description: input.Description,
		Permissions: input.Permissions,
		IsActive:    true,
	}
	if role.Permissions == nil {
		role.Permissions = models.PermissionMap{}
	}
	if err := s.db.Create(&role).Error; err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.audit.Record("role_created", map[string]any{"role_id": role.RoleID, "role_name": role.RoleName}, ctx)
	return &role, nil
}

// UpdateRole modifies a custom role. The built-in roles are immutable.
func (s *RoleService) UpdateRole(roleID uint, input RoleInput, ctx AuditContext) (*models.Role, error) {
	role, err := s.GetRole(roleID)
	if err != nil {
		return nil, err
	}
	if role.IsBuiltIn() {
		return nil, apperrors.Forbidden("built-in roles cannot be modified")
	}

	updates := map[string]any{}
	if input.RoleName != "" {
		updates["role_name"] = input.RoleName
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Permissions != nil {
		updates["permissions"] = input.Permissions
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return role, nil
	}

	if err := s.db.Model(&models.Role{}).Where("role_id = ?", roleID).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.audit.Record("role_updated", map[string]any{"role_id": roleID}, ctx)
	return s.GetRole(roleID)
}

// DeleteRole removes a custom role that no user still holds.
func (s *RoleService) DeleteRole(roleID uint, ctx AuditContext) error {
	role, err := s.GetRole(roleID)
	if err != nil {
		return err
	}
	if role.IsBuiltIn() {
		return apperrors.Forbidden("built-in roles cannot be deleted")
	}

	var inUse int64
	if err := s.db.Model(&models.User{}).Where("role_id = ?", roleID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return apperrors.Conflict("role is still assigned to %d user(s)", inUse)
	}

	if err := s.db.Delete(&models.Role{}, roleID).Error; err != nil {
		return err
	}

	s.audit.Record("role_deleted", map[string]any{"role_id": roleID}, ctx)
	return nil
}
