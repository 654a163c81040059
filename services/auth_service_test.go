package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
)

func TestRegisterCustomerSignup(t *testing.T) {
	_, auth, _, _ := newTestServices(t)

	result, err := auth.Register(RegisterInput{
		UserName: "alice",
		Password: "Abcdef1!",
		Email:    "alice@example.com",
	}, nil, AuditContext{})
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, result.User.RoleID)
	assert.NotEmpty(t, result.Token, "self-signup returns a session token")
	assert.Contains(t, result.User.RID, "usr-")

	claims, err := middleware.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.UserID, claims.UserID)
	assert.Equal(t, "customer", claims.RoleName)
}

func TestRegisterCustomerRequiredFields(t *testing.T) {
	_, auth, _, _ := newTestServices(t)

	_, err := auth.Register(RegisterInput{UserName: "bob", Password: "Abcdef1!"}, nil, AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = auth.Register(RegisterInput{UserName: "bob", Password: "Abcdef1!", Email: "not-an-email"}, nil, AuditContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email format")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	_, auth, _, _ := newTestServices(t)

	_, err := auth.Register(RegisterInput{
		UserName: "weak",
		Password: "abcdef1!",
		Email:    "weak@example.com",
	}, nil, AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "uppercase")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	createTestUser(t, db, "taken@example.com", "Abcdef1!", models.RoleCustomer)

	_, err := auth.Register(RegisterInput{
		UserName: "dup",
		Password: "Abcdef1!",
		Email:    "taken@example.com",
	}, nil, AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRegisterStaffCreation(t *testing.T) {
	_, auth, _, _ := newTestServices(t)
	admin := &middleware.Claims{UserID: 1, RoleID: models.RoleAdmin}

	result, err := auth.Register(RegisterInput{
		UserName: "chef",
		Password: "Abcdef1!",
		RoleID:   models.RoleStaff,
	}, admin, AuditContext{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, result.User.RoleID)
	assert.Empty(t, result.Token, "staff creation issues no session token")

	// role defaults to staff when omitted
	result, err = auth.Register(RegisterInput{UserName: "chef2", Password: "Abcdef1!"}, admin, AuditContext{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, result.User.RoleID)

	// staff creation cannot mint customers
	_, err = auth.Register(RegisterInput{
		UserName: "sneaky",
		Password: "Abcdef1!",
		RoleID:   models.RoleCustomer,
	}, admin, AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRegisterForbiddenForNonPrivilegedActor(t *testing.T) {
	_, auth, _, _ := newTestServices(t)
	customer := &middleware.Claims{UserID: 9, RoleID: models.RoleCustomer}

	_, err := auth.Register(RegisterInput{UserName: "x", Password: "Abcdef1!"}, customer, AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestLoginSuccess(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "login@example.com", "Abcdef1!", models.RoleCustomer)

	result, err := auth.Login("login@example.com", "Abcdef1!", AuditContext{})
	require.NoError(t, err)
	assert.Equal(t, user.UserID, result.User.UserID)
	assert.NotEmpty(t, result.Token)
	assert.NotNil(t, result.User.LastLogin)
}

func TestLoginAntiEnumeration(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	createTestUser(t, db, "real@example.com", "Abcdef1!", models.RoleCustomer)

	_, errUnknown := auth.Login("ghost@example.com", "Abcdef1!", AuditContext{})
	_, errWrongPw := auth.Login("real@example.com", "WrongPass1!", AuditContext{})

	// unknown email and wrong password must be indistinguishable
	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(errUnknown))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(errWrongPw))
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "lock@example.com", "Abcdef1!", models.RoleCustomer)

	for i := 0; i < MaxLoginAttempts; i++ {
		_, err := auth.Login("lock@example.com", "WrongPass1!", AuditContext{})
		require.Error(t, err)
	}

	var locked models.User
	require.NoError(t, db.First(&locked, user.UserID).Error)
	assert.True(t, locked.LockUp)
	assert.Equal(t, MaxLoginAttempts, locked.LoginAttempt)
	assert.NotNil(t, locked.LockUpAt)

	// the correct password no longer works once locked
	_, err := auth.Login("lock@example.com", "Abcdef1!", AuditContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account is locked")
}

func TestLoginSuccessResetsAttemptCounter(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "counter@example.com", "Abcdef1!", models.RoleCustomer)

	for i := 0; i < MaxLoginAttempts-1; i++ {
		_, err := auth.Login("counter@example.com", "WrongPass1!", AuditContext{})
		require.Error(t, err)
	}

	_, err := auth.Login("counter@example.com", "Abcdef1!", AuditContext{})
	require.NoError(t, err)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.UserID).Error)
	assert.Equal(t, 0, fresh.LoginAttempt)
	assert.False(t, fresh.LockUp)
}

func TestRefreshTokenReDerivesClaims(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "refresh@example.com", "Abcdef1!", models.RoleCustomer)

	result, err := auth.Login("refresh@example.com", "Abcdef1!", AuditContext{})
	require.NoError(t, err)

	// promote after issuance; the refreshed token must see the new role
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.UserID).
		UpdateColumn("role_id", models.RoleManager).Error)

	newToken, fresh, err := auth.RefreshToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, fresh.RoleID)

	claims, err := middleware.ParseToken(newToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, claims.RoleID)
	assert.Equal(t, "manager", claims.RoleName)
}

func TestRefreshTokenRejectsLockedUser(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "refreshlock@example.com", "Abcdef1!", models.RoleCustomer)

	result, err := auth.Login("refreshlock@example.com", "Abcdef1!", AuditContext{})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.UserID).
		UpdateColumn("lock_up", true).Error)

	_, _, err = auth.RefreshToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestRefreshTokenRejectsInactiveRole(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	createTestUser(t, db, "refreshrole@example.com", "Abcdef1!", models.RoleCustomer)

	result, err := auth.Login("refreshrole@example.com", "Abcdef1!", AuditContext{})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Role{}).Where("role_id = ?", models.RoleCustomer).
		UpdateColumn("is_active", false).Error)

	_, _, err = auth.RefreshToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "change@example.com", "Abcdef1!", models.RoleCustomer)

	err := auth.ChangePassword(user.UserID, "WrongOld1!", "Newpass1!", AuditContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "old password is incorrect")

	err = auth.ChangePassword(user.UserID, "Abcdef1!", "Abcdef1!", AuditContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different from the old password")

	err = auth.ChangePassword(user.UserID, "Abcdef1!", "weak", AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	require.NoError(t, auth.ChangePassword(user.UserID, "Abcdef1!", "Newpass1!", AuditContext{}))

	_, err = auth.Login("change@example.com", "Newpass1!", AuditContext{})
	assert.NoError(t, err)
}

func TestForgotPasswordIsSilentForUnknownEmail(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	createTestUser(t, db, "known@example.com", "Abcdef1!", models.RoleCustomer)

	// known and unknown addresses produce the same outcome
	assert.NoError(t, auth.ForgotPassword("known@example.com", AuditContext{}))
	assert.NoError(t, auth.ForgotPassword("ghost@example.com", AuditContext{}))

	err := auth.ForgotPassword("not-an-email", AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.PasswordResetToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only the known email gets a token")
}

func TestResetPasswordClearsLock(t *testing.T) {
	db, auth, tokens, _ := newTestServices(t)
	user := createTestUser(t, db, "resetlock@example.com", "Abcdef1!", models.RoleCustomer)

	for i := 0; i < MaxLoginAttempts; i++ {
		_, err := auth.Login("resetlock@example.com", "WrongPass1!", AuditContext{})
		require.Error(t, err)
	}

	token, err := tokens.CreatePasswordResetToken(user.UserID)
	require.NoError(t, err)

	require.NoError(t, auth.ResetPassword(token.Token, "Newpass1!", "Newpass1!", AuditContext{}))

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.UserID).Error)
	assert.False(t, fresh.LockUp)
	assert.Equal(t, 0, fresh.LoginAttempt)
	assert.Nil(t, fresh.LockUpAt)

	_, err = auth.Login("resetlock@example.com", "Newpass1!", AuditContext{})
	assert.NoError(t, err)
}

func TestResetPasswordValidation(t *testing.T) {
	db, auth, tokens, _ := newTestServices(t)
	user := createTestUser(t, db, "resetval@example.com", "Abcdef1!", models.RoleCustomer)

	token, err := tokens.CreatePasswordResetToken(user.UserID)
	require.NoError(t, err)

	err = auth.ResetPassword(token.Token, "Newpass1!", "Different1!", AuditContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")

	err = auth.ResetPassword(token.Token, "weak", "weak", AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// validation failures do not burn the token
	require.NoError(t, auth.ResetPassword(token.Token, "Newpass1!", "Newpass1!", AuditContext{}))

	err = auth.ResetPassword(token.Token, "Another1!", "Another1!", AuditContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used")
}

func TestVerifyEmailFlow(t *testing.T) {
	db, auth, tokens, _ := newTestServices(t)
	user := createTestUser(t, db, "flow@example.com", "Abcdef1!", models.RoleCustomer)

	token, err := tokens.CreateEmailVerificationToken(user.UserID, "flow@example.com")
	require.NoError(t, err)

	require.NoError(t, auth.VerifyEmail(token.Token, AuditContext{}))

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.UserID).Error)
	assert.True(t, fresh.EmailVerified)
	assert.NotNil(t, fresh.EmailVerifiedAt)
}

func TestResendVerificationEmail(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "resend@example.com", "Abcdef1!", models.RoleCustomer)

	require.NoError(t, auth.ResendVerificationEmail("resend@example.com", AuditContext{}))

	var count int64
	require.NoError(t, db.Model(&models.EmailVerificationToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// unknown address: same generic success, no token
	require.NoError(t, auth.ResendVerificationEmail("ghost@example.com", AuditContext{}))
	require.NoError(t, db.Model(&models.EmailVerificationToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// already verified: silent short-circuit, no token
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.UserID).
		UpdateColumn("email_verified", true).Error)
	require.NoError(t, auth.ResendVerificationEmail("resend@example.com", AuditContext{}))
	require.NoError(t, db.Model(&models.EmailVerificationToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnlockAccount(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	createTestUser(t, db, "unlock@example.com", "Abcdef1!", models.RoleCustomer)

	for i := 0; i < MaxLoginAttempts; i++ {
		_, err := auth.Login("unlock@example.com", "WrongPass1!", AuditContext{})
		require.Error(t, err)
	}

	unlocked, err := auth.UnlockAccount("unlock@example.com", AuditContext{})
	require.NoError(t, err)
	assert.False(t, unlocked.LockUp)
	assert.Equal(t, 0, unlocked.LoginAttempt)

	_, err = auth.Login("unlock@example.com", "Abcdef1!", AuditContext{})
	assert.NoError(t, err)

	_, err = auth.UnlockAccount("ghost@example.com", AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteAccount(t *testing.T) {
	db, auth, _, _ := newTestServices(t)
	user := createTestUser(t, db, "delete@example.com", "Abcdef1!", models.RoleCustomer)

	err := auth.DeleteAccount(user.UserID, "WrongPass1!", AuditContext{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	require.NoError(t, auth.DeleteAccount(user.UserID, "Abcdef1!", AuditContext{}))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.UserID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
