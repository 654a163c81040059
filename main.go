package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"restaurant-management-api/config"
	"restaurant-management-api/handlers"
	"restaurant-management-api/routes"
	"restaurant-management-api/services"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load env and initialize database
	config.Load()
	config.InitDB()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Wire services
	audit := services.NewAuditService(config.DB, logger)
	tokens := services.NewTokenService(config.DB, logger)
	notifications := services.NewNotificationService(config.DB, logger)
	authSvc := services.NewAuthService(config.DB, tokens, audit, logger)
	orderSvc := services.NewOrderService(config.DB, audit, notifications, logger)
	userSvc := services.NewUserService(config.DB, audit, logger)
	roleSvc := services.NewRoleService(config.DB, audit, logger)
	branchSvc := services.NewBranchService(config.DB, logger)
	menuSvc := services.NewMenuService(config.DB, logger)

	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(authSvc),
		Orders:        handlers.NewOrderHandler(orderSvc),
		Branches:      handlers.NewBranchHandler(branchSvc),
		Menu:          handlers.NewMenuHandler(menuSvc),
		Users:         handlers.NewUserHandler(userSvc, roleSvc),
		Notifications: handlers.NewNotificationHandler(notifications),
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Management API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
