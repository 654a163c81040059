package config

import (
	"errors"
	"log"
	"os"
	"time"

	"restaurant-management-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs session tokens — read from env or fallback
var JWTSecret = []byte("restaurant_mgmt_super_secret_2024")

// JWTExpiry is the session token lifetime, default 7 days
var JWTExpiry = 7 * 24 * time.Hour

// Load reads .env (if present) and applies environment overrides.
func Load() {
	_ = godotenv.Load()

	if v := os.Getenv("JWT_SECRET"); v != "" {
		JWTSecret = []byte(v)
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			JWTExpiry = d
		} else {
			log.Printf("Invalid JWT_EXPIRES_IN %q, keeping default %s", v, JWTExpiry)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "restaurant.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate runs schema migration and seeds the built-in roles. Exposed so
// tests can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Branch{},
		&models.Table{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PasswordResetToken{},
		&models.EmailVerificationToken{},
		&models.AuditLog{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	for _, role := range models.DefaultRoles() {
		var existing models.Role
		err := db.Where("role_id = ?", role.RoleID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
