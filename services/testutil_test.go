package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"restaurant-management-api/config"
	"restaurant-management-api/models"
	"restaurant-management-api/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *AuthService, *TokenService, *OrderService) {
	t.Helper()
	db := newTestDB(t)
	log := zerolog.Nop()
	audit := NewAuditService(db, log)
	tokens := NewTokenService(db, log)
	notifications := NewNotificationService(db, log)
	auth := NewAuthService(db, tokens, audit, log)
	orders := NewOrderService(db, audit, notifications, log)
	return db, auth, tokens, orders
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string, roleID uint) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		RID:          utils.GenerateRID(utils.PrefixUser),
		UserName:     "test-" + email,
		PasswordHash: string(hash),
		Email:        &email,
		RoleID:       roleID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestMenuItem(t *testing.T, db *gorm.DB, name string, price float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		RID:         utils.GenerateRID(utils.PrefixItem),
		ItemName:    name,
		Price:       price,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
