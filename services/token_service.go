package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/models"
)

// Token lifetimes. Reset tokens are short-lived, verification tokens get a day.
const (
	ResetTokenTTL        = 15 * time.Minute
	VerificationTokenTTL = 24 * time.Hour
)

// TokenService manages single-use, time-limited tokens for password reset
// and email verification. Consumption is atomic: of two concurrent
// redemptions, exactly one succeeds and the other observes "already used".
type TokenService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewTokenService(db *gorm.DB, log zerolog.Logger) *TokenService {
	return &TokenService{db: db, log: log}
}

// generateToken returns 32 cryptographically random bytes, hex-encoded.
// The value is opaque: equality-compared, never decoded.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CreatePasswordResetToken issues a fresh reset token for the user.
// Outstanding tokens for the same user stay valid until they expire.
func (s *TokenService) CreatePasswordResetToken(userID uint) (*models.PasswordResetToken, error) {
	value, err := generateToken()
	if err != nil {
		return nil, err
	}
	token := models.PasswordResetToken{
		UserID:    userID,
		Token:     value,
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, fmt.Errorf("create password reset token: %w", err)
	}
	s.log.Info().Uint("user_id", userID).Time("expires_at", token.ExpiresAt).Msg("password reset token created")
	return &token, nil
}

// ConsumePasswordResetToken validates and burns a reset token, returning the
// owning user id. The mark-used update is conditioned on is_used=false.
func (s *TokenService) ConsumePasswordResetToken(value string) (uint, error) {
	var token models.PasswordResetToken
	if err := s.db.Where("token = ?", value).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.Unauthorized("password reset failed: token not found")
		}
		return 0, err
	}
	if token.IsUsed {
		return 0, apperrors.Unauthorized("password reset failed: token already used")
	}
	if time.Now().After(token.ExpiresAt) {
		return 0, apperrors.Unauthorized("password reset failed: token expired")
	}

	now := time.Now()
	res := s.db.Model(&models.PasswordResetToken{}).
		Where("id = ? AND is_used = ?", token.ID, false).
		Updates(map[string]any{"is_used": true, "used_at": now})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// lost the race against a concurrent redemption
		return 0, apperrors.Unauthorized("password reset failed: token already used")
	}
	return token.UserID, nil
}

// CreateEmailVerificationToken issues a fresh verification token.
func (s *TokenService) CreateEmailVerificationToken(userID uint, email string) (*models.EmailVerificationToken, error) {
	value, err := generateToken()
	if err != nil {
		return nil, err
	}
	token := models.EmailVerificationToken{
		UserID:    userID,
		Token:     value,
		Email:     email,
		ExpiresAt: time.Now().Add(VerificationTokenTTL),
	}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, fmt.Errorf("create email verification token: %w", err)
	}
	s.log.Info().Uint("user_id", userID).Str("email", email).Time("expires_at", token.ExpiresAt).Msg("email verification token created")
	return &token, nil
}

// ConsumeEmailVerificationToken validates and burns a verification token,
// returning the owning user id and the email it was issued for.
func (s *TokenService) ConsumeEmailVerificationToken(value string) (uint, string, error) {
	var token models.EmailVerificationToken
	if err := s.db.Where("token = ?", value).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", apperrors.Unauthorized("email verification failed: token not found")
		}
		return 0, "", err
	}
	if token.IsVerified {
		return 0, "", apperrors.Unauthorized("email verification failed: token already used")
	}
	if time.Now().After(token.ExpiresAt) {
		return 0, "", apperrors.Unauthorized("email verification failed: token expired")
	}

	now := time.Now()
	res := s.db.Model(&models.EmailVerificationToken{}).
		Where("id = ? AND is_verified = ?", token.ID, false).
		Updates(map[string]any{"is_verified": true, "verified_at": now})
	if res.Error != nil {
		return 0, "", res.Error
	}
	if res.RowsAffected == 0 {
		return 0, "", apperrors.Unauthorized("email verification failed: token already used")
	}
	return token.UserID, token.Email, nil
}

// CleanupExpiredTokens sweeps expired, unconsumed tokens of both kinds.
// Consumed tokens are kept for the audit trail.
func (s *TokenService) CleanupExpiredTokens() (resetDeleted int64, verificationDeleted int64, err error) {
	now := time.Now()

	res := s.db.Where("expires_at < ? AND is_used = ?", now, false).Delete(&models.PasswordResetToken{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	resetDeleted = res.RowsAffected

	res = s.db.Where("expires_at < ? AND is_verified = ?", now, false).Delete(&models.EmailVerificationToken{})
	if res.Error != nil {
		return resetDeleted, 0, res.Error
	}
	verificationDeleted = res.RowsAffected

	s.log.Info().Int64("reset_deleted", resetDeleted).Int64("verification_deleted", verificationDeleted).Msg("expired tokens cleaned up")
	return resetDeleted, verificationDeleted, nil
}
