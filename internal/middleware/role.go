package middleware

import (
	"net/http"

	"upasthit/internal/domain"
	"upasthit/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures the authenticated principal carries the required role.
// Runs after RequireAuth; no store access.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if principal.Role != required {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// StudentOnly middleware requires the student role
func StudentOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleStudent)
}

// TeacherOnly middleware requires the teacher role
func TeacherOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleTeacher)
}
