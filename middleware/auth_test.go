package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-management-api/config"
	"restaurant-management-api/models"
)

func testUserAndRole() (*models.User, *models.Role) {
	email := "jwt@example.com"
	user := &models.User{
		UserID:   42,
		UserName: "jwt-user",
		Email:    &email,
		RoleID:   models.RoleStaff,
	}
	role := &models.Role{
		RoleID:   models.RoleStaff,
		RoleName: "staff",
		Permissions: models.PermissionMap{
			models.PermManageOrders: true,
			models.PermPlaceOrders:  true,
		},
		IsActive: true,
	}
	return user, role
}

func TestGenerateAndParseToken(t *testing.T) {
	user, role := testUserAndRole()

	token, err := GenerateToken(user, role)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jwt@example.com", claims.Email)
	assert.Equal(t, "jwt-user", claims.UserName)
	assert.Equal(t, models.RoleStaff, claims.RoleID)
	assert.Equal(t, "staff", claims.RoleName)
	assert.True(t, claims.Permissions.Has(models.PermManageOrders))
	assert.False(t, claims.Permissions.Has(models.PermManageUsers))
}

func TestParseTokenRejectsExpired(t *testing.T) {
	user, role := testUserAndRole()

	original := config.JWTExpiry
	config.JWTExpiry = -time.Minute
	token, err := GenerateToken(user, role)
	config.JWTExpiry = original
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.jwt")
	assert.Error(t, err)
}

func newAuthTestRouter(handler gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, handler)
	r.GET("/probe", handlers...)
	return r
}

func probeHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
}

func doProbe(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	user, role := testUserAndRole()
	token, err := GenerateToken(user, role)
	require.NoError(t, err)

	r := newAuthTestRouter(probeHandler, AuthRequired())

	w := doProbe(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doProbe(t, r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doProbe(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthOptionalNeverAborts(t *testing.T) {
	user, role := testUserAndRole()
	token, err := GenerateToken(user, role)
	require.NoError(t, err)

	r := newAuthTestRouter(probeHandler, AuthOptional())

	// no token: anonymous, still 200
	w := doProbe(t, r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)

	// invalid token: treated as anonymous, not rejected
	w = doProbe(t, r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)

	w = doProbe(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestRequirePermission(t *testing.T) {
	user, role := testUserAndRole()
	token, err := GenerateToken(user, role)
	require.NoError(t, err)

	granted := newAuthTestRouter(probeHandler, AuthRequired(), RequirePermission(models.PermManageOrders))
	w := doProbe(t, granted, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// absent flag denies, it does not default to allow
	denied := newAuthTestRouter(probeHandler, AuthRequired(), RequirePermission(models.PermManageUsers))
	w = doProbe(t, denied, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// anonymous callers are unauthorized before the permission check
	anonymous := newAuthTestRouter(probeHandler, AuthOptional(), RequirePermission(models.PermManageOrders))
	w = doProbe(t, anonymous, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	user, role := testUserAndRole()
	token, err := GenerateToken(user, role)
	require.NoError(t, err)

	allowed := newAuthTestRouter(probeHandler, AuthRequired(), RequireRole(models.RoleAdmin, models.RoleStaff))
	w := doProbe(t, allowed, token)
	assert.Equal(t, http.StatusOK, w.Code)

	adminOnly := newAuthTestRouter(probeHandler, AuthRequired(), RequireRole(models.RoleAdmin))
	w = doProbe(t, adminOnly, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
