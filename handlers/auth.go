package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/middleware"
	"restaurant-management-api/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
	RoleID   uint   `json:"role_id"`
	Phone    string `json:"user_phone"`
	Address  string `json:"user_address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required"`
}

type UnlockAccountRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// Register handles both customer self-signup (anonymous) and staff creation
// (admin/manager). Routed behind AuthOptional so both modes share one
// endpoint.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	actor := middleware.GetClaims(c)
	result, err := h.svc.Register(services.RegisterInput{
		UserName: req.UserName,
		Password: req.Password,
		Email:    req.Email,
		RoleID:   req.RoleID,
		Phone:    req.Phone,
		Address:  req.Address,
	}, actor, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{"user": result.User}
	if result.Token != "" {
		data["token"] = result.Token
	}
	respondOK(c, http.StatusCreated, "Account created successfully", data)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.svc.Login(req.Email, req.Password, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	token, user, err := h.svc.RefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	user, err := h.svc.GetProfile(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile fetched", gin.H{"user": user})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.svc.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed successfully", nil)
}

// ForgotPassword always answers with the same generic success, whether or
// not the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.svc.ForgotPassword(req.Email, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "If an account exists with this email, a password reset link will be sent shortly", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.svc.ResetPassword(req.Token, req.NewPassword, req.ConfirmPassword, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.svc.VerifyEmail(req.Token, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Email verified successfully", nil)
}

// ResendVerification mirrors ForgotPassword's anti-enumeration behavior.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.svc.ResendVerificationEmail(req.Email, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "If an account exists with this email, a verification link will be sent shortly", nil)
}

func (h *AuthHandler) UnlockAccount(c *gin.Context) {
	var req UnlockAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, err := h.svc.UnlockAccount(req.Email, auditContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account unlocked successfully", gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	h.svc.Logout(claims.UserID, auditContext(c))
	respondOK(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.svc.DeleteAccount(claims.UserID, req.Password, auditContext(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account deleted", nil)
}
