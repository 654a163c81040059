package services

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/models"
)

// AuditContext carries request metadata attached to every audit entry.
type AuditContext struct {
	UserID    *uint
	IPAddress string
	UserAgent string
}

// AuditService appends security-relevant actions to the audit trail.
// Writes are fire-and-forget: a failed write is logged and swallowed so it
// never aborts the primary operation.
type AuditService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAuditService(db *gorm.DB, log zerolog.Logger) *AuditService {
	return &AuditService{db: db, log: log}
}

func (s *AuditService) Record(action string, details map[string]any, ctx AuditContext) {
	entry := models.AuditLog{
		UserID:    ctx.UserID,
		Action:    action,
		Details:   details,
		IPAddress: ctx.IPAddress,
		UserAgent: ctx.UserAgent,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("audit write failed")
	}
}
