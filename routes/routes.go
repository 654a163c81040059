package routes

import (
	"github.com/gin-gonic/gin"

	"restaurant-management-api/handlers"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
)

// Handlers bundles the constructed handler set for route registration
type Handlers struct {
	Auth          *handlers.AuthHandler
	Orders        *handlers.OrderHandler
	Branches      *handlers.BranchHandler
	Menu          *handlers.MenuHandler
	Users         *handlers.UserHandler
	Notifications *handlers.NotificationHandler
}

func SetupRoutes(r *gin.Engine, h *Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Register runs behind AuthOptional: anonymous callers self-sign-up
		// as customers, admin/manager callers create staff accounts
		public.POST("/auth/register", middleware.AuthOptional(), h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/refresh-token", h.Auth.RefreshToken)
		public.POST("/auth/forgot-password", h.Auth.ForgotPassword)
		public.POST("/auth/reset-password", h.Auth.ResetPassword)
		public.POST("/auth/verify-email", h.Auth.VerifyEmail)
		public.POST("/auth/resend-verification", h.Auth.ResendVerification)

		// Browsing the menu needs no account
		public.GET("/branches", h.Branches.ListBranches)
		public.GET("/branches/:id", h.Branches.GetBranch)
		public.GET("/categories", h.Menu.ListCategories)
		public.GET("/items", h.Menu.ListMenuItems)
		public.GET("/items/:id", h.Menu.GetMenuItem)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/profile", h.Auth.GetProfile)
		auth.POST("/auth/change-password", h.Auth.ChangePassword)
		auth.POST("/auth/logout", h.Auth.Logout)
		auth.DELETE("/auth/account", h.Auth.DeleteAccount)

		auth.GET("/notifications", h.Notifications.ListMine)
		auth.PUT("/notifications/:id/read", h.Notifications.MarkRead)
		auth.PUT("/notifications/read-all", h.Notifications.MarkAllRead)
	}

	// ── Ordering ───────────────────────────────────────────────────
	orders := r.Group("/api/orders")
	orders.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermPlaceOrders))
	{
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("/my", h.Orders.GetMyOrders)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.POST("/:id/items", h.Orders.AddOrderItem)
		orders.PUT("/:id/cancel", h.Orders.CancelOrder)
	}

	// ── Order management (staff and up) ────────────────────────────
	orderMgmt := r.Group("/api/orders")
	orderMgmt.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermManageOrders))
	{
		orderMgmt.GET("", h.Orders.ListOrders)
		orderMgmt.PUT("/:id/status", h.Orders.UpdateOrderStatus)
		orderMgmt.PUT("/items/:itemId", h.Orders.UpdateOrderItemQuantity)
		orderMgmt.DELETE("/items/:itemId", h.Orders.RemoveOrderItem)
	}

	reports := r.Group("/api/reports")
	reports.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermViewReports))
	{
		reports.GET("/orders", h.Orders.GetStatistics)
	}

	// ── Branch & table management ──────────────────────────────────
	branchMgmt := r.Group("/api/branches")
	branchMgmt.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermManageBranches))
	{
		branchMgmt.POST("", h.Branches.CreateBranch)
		branchMgmt.PUT("/:id", h.Branches.UpdateBranch)
		branchMgmt.DELETE("/:id", h.Branches.DeleteBranch)
	}

	tableMgmt := r.Group("/api")
	tableMgmt.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermManageTables))
	{
		tableMgmt.GET("/branches/:id/tables", h.Branches.ListTables)
		tableMgmt.POST("/tables", h.Branches.CreateTable)
		tableMgmt.PUT("/tables/:tableId", h.Branches.UpdateTable)
		tableMgmt.DELETE("/tables/:tableId", h.Branches.DeleteTable)
	}

	// ── Menu management ────────────────────────────────────────────
	menuMgmt := r.Group("/api")
	menuMgmt.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermManageMenu))
	{
		menuMgmt.POST("/categories", h.Menu.CreateCategory)
		menuMgmt.PUT("/categories/:id", h.Menu.UpdateCategory)
		menuMgmt.DELETE("/categories/:id", h.Menu.DeleteCategory)
		menuMgmt.POST("/items", h.Menu.CreateMenuItem)
		menuMgmt.PUT("/items/:id", h.Menu.UpdateMenuItem)
		menuMgmt.DELETE("/items/:id", h.Menu.DeleteMenuItem)
	}

	// ── User administration ────────────────────────────────────────
	userMgmt := r.Group("/api/users")
	userMgmt.Use(middleware.AuthRequired(), middleware.RequirePermission(models.PermManageUsers))
	{
		userMgmt.GET("", h.Users.ListUsers)
		userMgmt.GET("/:id", h.Users.GetUser)
		userMgmt.PUT("/:id/role", h.Users.UpdateUserRole)
		userMgmt.POST("/unlock", h.Auth.UnlockAccount)
	}

	// ── Role administration (admin only) ───────────────────────────
	roleMgmt := r.Group("/api/roles")
	roleMgmt.Use(middleware.AuthRequired(), middleware.RequireRole(models.RoleAdmin))
	{
		roleMgmt.GET("", h.Users.ListRoles)
		roleMgmt.POST("", h.Users.CreateRole)
		roleMgmt.PUT("/:id", h.Users.UpdateRole)
		roleMgmt.DELETE("/:id", h.Users.DeleteRole)
	}
}
