package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/obe-automation/attainment-api/internal/middleware"
	"github.com/obe-automation/attainment-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims
}

// facultyScope returns the faculty ID the report must be restricted to.
// Faculty callers are pinned to their own sections; admins and service
// callers see everything.
func facultyScope(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims != nil && claims.Role == models.RoleFaculty {
		return claims.UserID
	}
	return ""
}
