package middleware

import (
	"net/http"
	"strings"

	"upasthit/internal/domain"
	"upasthit/internal/pkg/response"
	"upasthit/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

const (
	principalIDKey   = "account_id"
	principalRoleKey = "role"
)

// RequireAuth verifies the access token and attaches the principal to the
// request context. The principal comes straight from the token claims with no
// store round-trip: a role or identity change only lands once the current
// access token expires.
//
// The token is read from the accessToken cookie, falling back to a Bearer
// header for non-browser clients. Absent, malformed, mis-signed, and expired
// tokens all get the same 401.
func RequireAuth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Access token required")
			c.Abort()
			return
		}

		claims, err := codec.VerifyAccess(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}
		if !claims.Role.Valid() {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(principalIDKey, claims.AccountID)
		c.Set(principalRoleKey, claims.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// CurrentPrincipal returns the authenticated identity set by RequireAuth.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	idAny, ok := c.Get(principalIDKey)
	if !ok {
		return domain.Principal{}, false
	}
	roleAny, ok := c.Get(principalRoleKey)
	if !ok {
		return domain.Principal{}, false
	}

	id, ok := idAny.(int64)
	if !ok {
		return domain.Principal{}, false
	}
	role, ok := roleAny.(domain.Role)
	if !ok {
		return domain.Principal{}, false
	}
	return domain.Principal{ID: id, Role: role}, true
}
