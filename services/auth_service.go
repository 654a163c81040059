package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
	"restaurant-management-api/utils"
)

// MaxLoginAttempts failed logins lock the account until explicit unlock or a
// successful password reset.
const MaxLoginAttempts = 5

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
	audit  *AuditService
	log    zerolog.Logger
}

func NewAuthService(db *gorm.DB, tokens *TokenService, audit *AuditService, log zerolog.Logger) *AuthService {
	return &AuthService{db: db, tokens: tokens, audit: audit, log: log}
}

type RegisterInput struct {
	UserName string
	Password string
	Email    string
	RoleID   uint
	Phone    string
	Address  string
}

type RegisterResult struct {
	User  *models.User
	Token string
}

type LoginResult struct {
	User  *models.User
	Token string
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPasswordStrength(password string) error {
	if errs := utils.ValidatePasswordStrength(password); len(errs) > 0 {
		return apperrors.Validation("password does not meet strength requirements: %s", errs[0])
	}
	return nil
}

func (s *AuthService) userWithRole(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account in one of two modes. Anonymous callers
// self-sign-up as customers and get a session token back. Admin or manager
// callers create staff accounts ({admin, manager, staff} only) with no token.
// Any other authenticated caller is rejected.
func (s *AuthService) Register(input RegisterInput, actor *middleware.Claims, ctx AuditContext) (*RegisterResult, error) {
	isStaffCreation := actor != nil && (actor.RoleID == models.RoleAdmin || actor.RoleID == models.RoleManager)
	isCustomerSignup := actor == nil

	switch {
	case isCustomerSignup:
		if input.UserName == "" || input.Password == "" || input.Email == "" {
			return nil, apperrors.Validation("user_name, password and email are required")
		}
		if !utils.IsValidEmail(input.Email) {
			return nil, apperrors.Validation("invalid email format")
		}
	case isStaffCreation:
		if input.UserName == "" || input.Password == "" {
			return nil, apperrors.Validation("user_name and password are required")
		}
		if input.Email != "" && !utils.IsValidEmail(input.Email) {
			return nil, apperrors.Validation("invalid email format")
		}
		if input.RoleID != 0 && input.RoleID != models.RoleAdmin && input.RoleID != models.RoleManager && input.RoleID != models.RoleStaff {
			return nil, apperrors.Validation("invalid role_id. Must be 1 (admin), 2 (manager) or 3 (staff)")
		}
	default:
		return nil, apperrors.Forbidden("only admin or manager can create staff accounts")
	}

	if err := checkPasswordStrength(input.Password); err != nil {
		return nil, err
	}

	if input.Email != "" {
		var existing models.User
		err := s.db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			return nil, apperrors.Conflict("email is already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	roleID := models.RoleCustomer
	if isStaffCreation {
		roleID = models.RoleStaff
		if input.RoleID != 0 {
			roleID = input.RoleID
		}
	}

	user := models.User{
		RID:          utils.GenerateRID(utils.PrefixUser),
		UserName:     input.UserName,
		PasswordHash: hash,
		RoleID:       roleID,
		UserPhone:    input.Phone,
		UserAddress:  input.Address,
	}
	if input.Email != "" {
		email := input.Email
		user.Email = &email
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	created, err := s.userWithRole(user.UserID)
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{User: created}
	if isCustomerSignup {
		token, err := middleware.GenerateToken(created, created.Role)
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}
		result.Token = token
	}

	action := "customer_registered"
	if isStaffCreation {
		action = "staff_account_created"
	}
	s.audit.Record(action, map[string]any{"new_user_id": created.UserID, "role_id": created.RoleID}, ctx)
	s.log.Info().Uint("user_id", created.UserID).Uint("role_id", created.RoleID).Msg("user registered")

	return result, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller; a locked account is not.
func (s *AuthService) Login(email, password string, ctx AuditContext) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("email or password is incorrect")
		}
		return nil, err
	}

	if user.LockUp {
		return nil, apperrors.Unauthorized("account is locked. Please contact administrator")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordFailedAttempt(&user, ctx)
		return nil, apperrors.Unauthorized("email or password is incorrect")
	}

	now := time.Now()
	if err := s.db.Model(&models.User{}).Where("user_id = ?", user.UserID).
		Updates(map[string]any{"login_attempt": 0, "last_login": now}).Error; err != nil {
		return nil, err
	}

	fresh, err := s.userWithRole(user.UserID)
	if err != nil {
		return nil, err
	}

	token, err := middleware.GenerateToken(fresh, fresh.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.audit.Record("login", map[string]any{"email": email}, ctx)
	s.log.Info().Uint("user_id", fresh.UserID).Msg("login successful")

	return &LoginResult{User: fresh, Token: token}, nil
}

// recordFailedAttempt bumps the persisted counter and flips the lock flag in
// conditional updates so two parallel failures cannot both read attempt=4
// and skip the lock at 5.
func (s *AuthService) recordFailedAttempt(user *models.User, ctx AuditContext) {
	if err := s.db.Model(&models.User{}).Where("user_id = ?", user.UserID).
		UpdateColumn("login_attempt", gorm.Expr("login_attempt + 1")).Error; err != nil {
		s.log.Error().Err(err).Uint("user_id", user.UserID).Msg("failed to increment login attempts")
		return
	}

	res := s.db.Model(&models.User{}).
		Where("user_id = ? AND login_attempt >= ? AND lock_up = ?", user.UserID, MaxLoginAttempts, false).
		Updates(map[string]any{"lock_up": true, "lock_up_at": time.Now()})
	if res.Error != nil {
		s.log.Error().Err(res.Error).Uint("user_id", user.UserID).Msg("failed to apply account lock")
		return
	}
	if res.RowsAffected > 0 {
		s.audit.Record("account_locked", map[string]any{"user_id": user.UserID}, ctx)
		s.log.Warn().Uint("user_id", user.UserID).Msg("account locked after repeated failed logins")
	}
}

// RefreshToken re-derives claims from the store so role, permission and lock
// changes since issuance take effect immediately.
func (s *AuthService) RefreshToken(tokenStr string) (string, *models.User, error) {
	claims, err := middleware.ParseToken(tokenStr)
	if err != nil {
		return "", nil, apperrors.Unauthorized("refresh token is invalid or expired")
	}

	user, err := s.userWithRole(claims.UserID)
	if err != nil || user.LockUp {
		return "", nil, apperrors.Unauthorized("user not found or account is locked")
	}

	if user.Role != nil && !user.Role.IsActive {
		return "", nil, apperrors.Forbidden("your role is no longer active")
	}

	token, err := middleware.GenerateToken(user, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// ChangePassword requires the correct old password and a strong new one that
// differs from the old.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string, ctx AuditContext) error {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.Unauthorized("old password is incorrect")
	}
	if newPassword == oldPassword {
		return apperrors.Validation("new password must be different from the old password")
	}
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).
		UpdateColumn("password", hash).Error; err != nil {
		return err
	}

	s.audit.Record("password_changed", map[string]any{"user_id": userID}, ctx)
	return nil
}

// ForgotPassword issues a reset token when the email exists. It never tells
// the caller whether it does: the generic success message is identical
// either way.
func (s *AuthService) ForgotPassword(email string, ctx AuditContext) error {
	if !utils.IsValidEmail(email) {
		return apperrors.Validation("invalid email format")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Info().Str("email", email).Msg("forgot password for unknown email")
			return nil
		}
		return err
	}

	token, err := s.tokens.CreatePasswordResetToken(user.UserID)
	if err != nil {
		return err
	}

	// Delivery is the mail collaborator's job; log instead of sending.
	s.log.Info().Uint("user_id", user.UserID).Str("token_prefix", token.Token[:10]).Msg("password reset email would be sent")
	s.audit.Record("password_reset_requested", map[string]any{"email": email}, ctx)
	return nil
}

// ResetPassword consumes a reset token exactly once, updates the password
// and clears lock state and the attempt counter.
func (s *AuthService) ResetPassword(tokenValue, newPassword, confirmPassword string, ctx AuditContext) error {
	if newPassword != confirmPassword {
		return apperrors.Validation("passwords do not match")
	}
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	userID, err := s.tokens.ConsumePasswordResetToken(tokenValue)
	if err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).
		Updates(map[string]any{
			"password":      hash,
			"login_attempt": 0,
			"lock_up":       false,
			"lock_up_at":    nil,
		}).Error; err != nil {
		return err
	}

	s.audit.Record("password_reset_completed", map[string]any{"user_id": userID}, ctx)
	s.log.Info().Uint("user_id", userID).Msg("password reset")
	return nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *AuthService) VerifyEmail(tokenValue string, ctx AuditContext) error {
	userID, _, err := s.tokens.ConsumeEmailVerificationToken(tokenValue)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).
		Updates(map[string]any{"email_verified": true, "email_verified_at": now}).Error; err != nil {
		return err
	}

	s.audit.Record("email_verified", map[string]any{"user_id": userID}, ctx)
	return nil
}

// ResendVerificationEmail issues a fresh verification token. Unknown and
// already-verified addresses short-circuit silently with the same generic
// success as the real path.
func (s *AuthService) ResendVerificationEmail(email string, ctx AuditContext) error {
	if !utils.IsValidEmail(email) {
		return apperrors.Validation("invalid email format")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Info().Str("email", email).Msg("resend verification for unknown email")
			return nil
		}
		return err
	}

	if user.EmailVerified {
		return nil
	}

	token, err := s.tokens.CreateEmailVerificationToken(user.UserID, email)
	if err != nil {
		return err
	}

	s.log.Info().Uint("user_id", user.UserID).Str("token_prefix", token.Token[:10]).Msg("verification email would be sent")
	return nil
}

// UnlockAccount resets the lock flag and attempt counter. Admin recovery
// path outside the token flow.
func (s *AuthService) UnlockAccount(email string, ctx AuditContext) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}

	if err := s.db.Model(&models.User{}).Where("user_id = ?", user.UserID).
		Updates(map[string]any{"lock_up": false, "login_attempt": 0, "lock_up_at": nil}).Error; err != nil {
		return nil, err
	}

	s.audit.Record("account_unlocked", map[string]any{"user_id": user.UserID}, ctx)
	return s.userWithRole(user.UserID)
}

// GetProfile returns the user with role information.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userWithRole(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Logout records the action. Tokens stay valid until natural expiry.
func (s *AuthService) Logout(userID uint, ctx AuditContext) {
	s.audit.Record("logout", map[string]any{"user_id": userID}, ctx)
}

// DeleteAccount hard-deletes the caller's own account after password
// confirmation.
func (s *AuthService) DeleteAccount(userID uint, password string, ctx AuditContext) error {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return apperrors.Unauthorized("password is incorrect")
	}

	if err := s.db.Delete(&models.User{}, user.UserID).Error; err != nil {
		return err
	}

	s.audit.Record("account_deleted", map[string]any{"user_id": userID}, ctx)
	return nil
}
