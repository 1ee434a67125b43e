package auth

import (
	"errors"
	"net/http"
	"time"

	"upasthit/internal/middleware"
	"upasthit/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// CookieConfig carries the attributes for both auth cookies. HttpOnly always;
// Secure and SameSite come from the environment.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	Path     string

	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	if cookies.Path == "" {
		cookies.Path = "/"
	}
	return &Handler{
		service: service,
		cookies: cookies,
	}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signIn", h.SignIn)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/signOut", h.SignOut)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/validateUser", h.ValidateUser)
}

// SignIn authenticates a student (roll number) or teacher (email) and starts
// a session: both tokens land in HTTP-only cookies, the body carries only the
// public profile. Unknown account and wrong password answer identically.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to sign in")
		return
	}

	h.setCookie(c, accessCookie, result.AccessToken, h.cookies.AccessMaxAge)
	h.setCookie(c, refreshCookie, result.RefreshToken, h.cookies.RefreshMaxAge)

	response.Success(c, http.StatusOK, gin.H{
		"user": toPublic(result.Account),
	})
}

// Refresh reissues the access cookie from a valid refresh cookie.
func (h *Handler) Refresh(c *gin.Context) {
	raw, _ := c.Cookie(refreshCookie)

	accessToken, err := h.service.Refresh(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingToken), errors.Is(err, ErrUnauthorized):
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	h.setCookie(c, accessCookie, accessToken, h.cookies.AccessMaxAge)
	response.Success(c, http.StatusOK, gin.H{
		"message": "token refreshed",
	})
}

// SignOut never fails from the caller's perspective: cookies are cleared and
// 200 returned whether or not the refresh token still resolved to a session.
func (h *Handler) SignOut(c *gin.Context) {
	raw, _ := c.Cookie(refreshCookie)

	if err := h.service.Logout(c.Request.Context(), raw); err != nil {
		_ = c.Error(err)
	}

	h.clearCookie(c, accessCookie)
	h.clearCookie(c, refreshCookie)

	response.Success(c, http.StatusOK, gin.H{
		"message": "signed out",
	})
}

func (h *Handler) ValidateUser(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	account, err := h.service.CurrentAccount(c.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOOKUP_FAILED", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": toPublic(account),
	})
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge time.Duration) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(name, value, int(maxAge.Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(name, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
}
