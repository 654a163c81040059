package services

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/models"
	"restaurant-management-api/utils"
)

type NotificationService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewNotificationService(db *gorm.DB, log zerolog.Logger) *NotificationService {
	return &NotificationService{db: db, log: log}
}

type CreateNotificationInput struct {
	UserID  *uint
	OrderID *uint
	Type    string
	Message string
}

func (s *NotificationService) Create(input CreateNotificationInput) (*models.Notification, error) {
	if input.Message == "" {
		return nil, apperrors.Validation("message is required")
	}
	if input.Type == "" {
		input.Type = "general"
	}

	notification := models.Notification{
		RID:     utils.GenerateRID(utils.PrefixNotification),
		UserID:  input.UserID,
		OrderID: input.OrderID,
		Type:    input.Type,
		Message: input.Message,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &notification, nil
}

// NotifyOrderStatus records an order-status notification for the customer.
// Best effort: a failed write is logged, not propagated.
func (s *NotificationService) NotifyOrderStatus(userID, orderID uint, status models.OrderStatus) {
	_, err := s.Create(CreateNotificationInput{
		UserID:  &userID,
		OrderID: &orderID,
		Type:    "order_status",
		Message: fmt.Sprintf("Your order is now %s", status),
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("order_id", orderID).Msg("failed to create order status notification")
	}
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifications []models.Notification
	if err := q.Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		UpdateColumn("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		UpdateColumn("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
