package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/models"
	"restaurant-management-api/services"
)

type UserHandler struct {
	users *services.UserService
	roles *services.RoleService
}

func NewUserHandler(users *services.UserService, roles *services.RoleService) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

type UpdateUserRoleRequest struct {
	RoleID uint `json:"role_id" binding:"required"`
}

type RoleRequest struct {
	RoleName    string               `json:"role_name"`
	Description string               `json:"description"`
	Permissions models.PermissionMap `json:"permissions"`
	IsActive    *bool                `json:"is_active"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := h.users.ListUsers(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Users fetched", result)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User fetched", gin.H{"user": user})
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	user, err := h.users.UpdateUserRole(userID, req.RoleID, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User role updated", gin.H{"user": user})
}

func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.ListRoles()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Roles fetched", gin.H{"roles": roles, "count": len(roles)})
}

func (h *UserHandler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	role, err := h.roles.CreateRole(services.RoleInput{
		RoleName:    req.RoleName,
		Description: req.Description,
		Permissions: req.Permissions,
	}, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Role created", gin.H{"role": role})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	roleID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	role, err := h.roles.UpdateRole(roleID, services.RoleInput{
		RoleName:    req.RoleName,
		Description: req.Description,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	}, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Role updated", gin.H{"role": role})
}

func (h *UserHandler) DeleteRole(c *gin.Context) {
	roleID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.roles.DeleteRole(roleID, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Role deleted", nil)
}
