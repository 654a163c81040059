package models

import "time"

// PasswordResetToken is a single-use credential for the password reset flow.
// Valid only while unconsumed and before expires_at.
type PasswordResetToken struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Token     string     `json:"-" gorm:"uniqueIndex;size:128;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	IsUsed    bool       `json:"is_used" gorm:"default:false"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// EmailVerificationToken mirrors the reset token shape with its own table,
// a longer expiry and an is_verified consumption flag.
type EmailVerificationToken struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	User       *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Token      string     `json:"-" gorm:"uniqueIndex;size:128;not null"`
	Email      string     `json:"email" gorm:"size:255;not null"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null"`
	IsVerified bool       `json:"is_verified" gorm:"default:false"`
	VerifiedAt *time.Time `json:"verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
