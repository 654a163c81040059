package middleware

import (
	"net/http"
	"strings"
	"time"

	"restaurant-management-api/config"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "claims"

type Claims struct {
	UserID      uint                 `json:"user_id"`
	Email       string               `json:"email"`
	UserName    string               `json:"user_name"`
	RoleID      uint                 `json:"role_id"`
	RoleName    string               `json:"role_name"`
	Permissions models.PermissionMap `json:"permissions"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT embedding the user's current role and
// permission map. Claims are re-derived from the store on refresh, never
// trusted from an older token.
func GenerateToken(user *models.User, role *models.Role) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	roleName := "customer"
	permissions := models.PermissionMap{}
	if role != nil {
		roleName = role.RoleName
		permissions = role.Permissions
	}
	claims := Claims{
		UserID:      user.UserID,
		Email:       email,
		UserName:    user.UserName,
		RoleID:      user.RoleID,
		RoleName:    roleName,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// ParseToken verifies signature and expiry and returns the claims
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// AuthRequired validates the JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AuthOptional attaches identity when a valid token is present and proceeds
// anonymously otherwise. It never fails the surrounding flow.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := ParseToken(tokenStr); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequirePermission enforces a capability flag from the caller's role.
// Unknown flags default to deny.
func RequirePermission(p models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			c.Abort()
			return
		}
		if !claims.Permissions.Has(p) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied. Missing permission: " + string(p)})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole enforces that the caller holds one of the given role ids
func RequireRole(roleIDs ...uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			c.Abort()
			return
		}
		for _, id := range roleIDs {
			if claims.RoleID == id {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied for your role"})
		c.Abort()
	}
}

// GetClaims extracts caller claims from context, nil when anonymous
func GetClaims(c *gin.Context) *Claims {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
