package timetable

import (
	"net/http"
	"time"

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

// RegisterRoutes mounts the timetable endpoints; both roles may read their
// own schedule, so only RequireAuth is expected on the group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	tt := protected.Group("/timetable")
	{
		tt.GET("", h.GetWeekly)
		tt.GET("/today", h.GetToday)
	}
}

func (h *Handler) GetWeekly(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	slots, err := h.service.Weekly(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "TIMETABLE_FAILED", "Failed to load timetable")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"timetable": slots,
	})
}

func (h *Handler) GetToday(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	slots, err := h.service.Today(c.Request.Context(), principal, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "TIMETABLE_FAILED", "Failed to load timetable")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"timetable": slots,
	})
}
