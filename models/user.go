package models

import "time"

// Built-in role IDs. These rows are seeded at migration and cannot be
// modified or deleted through the role management endpoints.
const (
	RoleAdmin    uint = 1
	RoleManager  uint = 2
	RoleStaff    uint = 3
	RoleCustomer uint = 4
)

// Permission is a named capability flag. Checks go through a closed set of
// typed constants so a mistyped key is a compile error, not a silent deny.
type Permission string

const (
	PermManageUsers    Permission = "manage_users"
	PermManageRoles    Permission = "manage_roles"
	PermManageBranches Permission = "manage_branches"
	PermManageTables   Permission = "manage_tables"
	PermManageMenu     Permission = "manage_menu"
	PermManageOrders   Permission = "manage_orders"
	PermPlaceOrders    Permission = "place_orders"
	PermViewReports    Permission = "view_reports"
)

// PermissionMap holds a role's capability flags. Unknown keys are false.
type PermissionMap map[Permission]bool

// Has reports whether the permission is explicitly granted.
func (m PermissionMap) Has(p Permission) bool {
	return m[p]
}

type Role struct {
	RoleID      uint          `json:"role_id" gorm:"primaryKey"`
	RoleName    string        `json:"role_name" gorm:"uniqueIndex;size:50;not null"`
	Description string        `json:"description" gorm:"size:255"`
	Permissions PermissionMap `json:"permissions" gorm:"serializer:json"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsBuiltIn reports whether the role is one of the seeded roles (ids 1-4).
func (r *Role) IsBuiltIn() bool {
	return r.RoleID >= RoleAdmin && r.RoleID <= RoleCustomer
}

type User struct {
	UserID          uint       `json:"user_id" gorm:"primaryKey"`
	RID             string     `json:"rid" gorm:"uniqueIndex;size:64"`
	UserName        string     `json:"user_name" gorm:"size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"column:password;not null"`
	Email           *string    `json:"email" gorm:"uniqueIndex;size:255"`
	RoleID          uint       `json:"role_id" gorm:"not null;default:4"`
	Role            *Role      `json:"role,omitempty" gorm:"foreignKey:RoleID;references:RoleID"`
	LockUp          bool       `json:"lock_up" gorm:"default:false"`
	LockUpAt        *time.Time `json:"lock_up_at"`
	LoginAttempt    int        `json:"login_attempt" gorm:"default:0"`
	LastLogin       *time.Time `json:"last_login"`
	EmailVerified   bool       `json:"email_verified" gorm:"default:false"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	UserPhone       string     `json:"user_phone" gorm:"size:20"`
	UserAddress     string     `json:"user_address" gorm:"size:500"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DefaultRoles returns the seeded role set with its capability grants.
func DefaultRoles() []Role {
	all := PermissionMap{
		PermManageUsers:    true,
		PermManageRoles:    true,
		PermManageBranches: true,
		PermManageTables:   true,
		PermManageMenu:     true,
		PermManageOrders:   true,
		PermPlaceOrders:    true,
		PermViewReports:    true,
	}
	return []Role{
		{RoleID: RoleAdmin, RoleName: "admin", Description: "Full system access", Permissions: all, IsActive: true},
		{RoleID: RoleManager, RoleName: "manager", Description: "Branch management", Permissions: PermissionMap{
			PermManageUsers:    true,
			PermManageBranches: true,
			PermManageTables:   true,
			PermManageMenu:     true,
			PermManageOrders:   true,
			PermPlaceOrders:    true,
			PermViewReports:    true,
		}, IsActive: true},
		{RoleID: RoleStaff, RoleName: "staff", Description: "Day-to-day operations", Permissions: PermissionMap{
			PermManageOrders: true,
			PermPlaceOrders:  true,
		}, IsActive: true},
		{RoleID: RoleCustomer, RoleName: "customer", Description: "Self-service customer", Permissions: PermissionMap{
			PermPlaceOrders: true,
		}, IsActive: true},
	}
}
