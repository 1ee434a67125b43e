package otp

import (
	"errors"
	"net/http"

	"upasthit/internal/middleware"
	"upasthit/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the verification endpoints behind the student guard.
func (h *Handler) RegisterRoutes(student *gin.RouterGroup) {
	group := student.Group("/email")
	{
		group.POST("/send-otp", h.Send)
		group.POST("/verify-otp", h.Verify)
		group.POST("/resend-otp", h.Resend)
	}
}

func (h *Handler) Send(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Send(c.Request.Context(), principal.ID, req.Email); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "This email is already associated with another account")
			return
		}
		response.Error(c, http.StatusInternalServerError, "OTP_FAILED", "Failed to send verification code")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "verification code sent",
	})
}

func (h *Handler) Verify(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.Verify(c.Request.Context(), principal.ID, req.Code)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{
			"message": "email verified",
		})
	case errors.Is(err, ErrNoPendingOTP):
		response.Error(c, http.StatusNotFound, "NO_PENDING_OTP", "No verification in progress")
	case errors.Is(err, ErrCodeExpired):
		response.Error(c, http.StatusGone, "OTP_EXPIRED", "Verification code expired")
	case errors.Is(err, ErrTooManyAttempts):
		response.Error(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many failed attempts")
	case errors.Is(err, ErrCodeMismatch):
		response.Error(c, http.StatusBadRequest, "OTP_MISMATCH", "Incorrect verification code")
	default:
		response.Error(c, http.StatusInternalServerError, "OTP_FAILED", "Failed to verify code")
	}
}

func (h *Handler) Resend(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	err := h.service.Resend(c.Request.Context(), principal.ID)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{
			"message": "verification code resent",
		})
	case errors.Is(err, ErrNoPendingOTP):
		response.Error(c, http.StatusNotFound, "NO_PENDING_OTP", "No verification in progress")
	case errors.Is(err, ErrResendLimit):
		response.Error(c, http.StatusTooManyRequests, "RESEND_LIMIT", "Resend limit reached")
	case errors.Is(err, ErrResendCooldown):
		response.Error(c, http.StatusTooManyRequests, "RESEND_COOLDOWN", "Please wait before requesting another code")
	default:
		response.Error(c, http.StatusInternalServerError, "OTP_FAILED", "Failed to resend code")
	}
}
