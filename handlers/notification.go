package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/middleware"
	"restaurant-management-api/services"
)

type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.svc.ListForUser(claims.UserID, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Notifications fetched", gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := idParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.MarkRead(notificationID, claims.UserID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	updated, err := h.svc.MarkAllRead(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Notifications marked as read", gin.H{"updated": updated})
}
