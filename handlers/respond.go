package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-management-api/apperrors"
	"restaurant-management-api/middleware"
	"restaurant-management-api/services"
)

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.Status(err), gin.H{"success": false, "error": err.Error()})
}

// auditContext captures the request metadata every audit entry carries
func auditContext(c *gin.Context) services.AuditContext {
	ctx := services.AuditContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims := middleware.GetClaims(c); claims != nil {
		userID := claims.UserID
		ctx.UserID = &userID
	}
	return ctx
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}
