package attendance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"upasthit/internal/middleware"
	"upasthit/internal/pkg/response"
	"upasthit/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTeacherRoutes mounts the marking endpoints; the group is expected
// to carry RequireAuth plus the teacher role guard.
func (h *Handler) RegisterTeacherRoutes(teacher *gin.RouterGroup) {
	teacher.GET("/profile", h.GetTeacherProfile)
	teacher.GET("/students", h.GetMarkSheet)
	teacher.POST("/attendance", h.MarkAttendance)
	teacher.POST("/submit", h.SubmitAttendance)
	teacher.GET("/dashboard", h.GetDashboard)
	teacher.GET("/current-lecture", h.GetCurrentLecture)
	teacher.GET("/attendance-summary", h.GetSummary)
	teacher.GET("/attendance-calendar", h.GetCalendar)
}

// RegisterStudentRoutes mounts the report endpoints behind the student guard.
func (h *Handler) RegisterStudentRoutes(student *gin.RouterGroup) {
	student.GET("/profile", h.GetProfile)
	student.GET("/attendance/overall", h.GetOverall)
	student.GET("/attendance/monthly", h.GetMonthly)
	student.GET("/attendance/subject-wise", h.GetSubjectWise)
}

func (h *Handler) GetMarkSheet(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	timetableID, err := strconv.ParseInt(c.Query("timetable_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid timetable id")
		return
	}
	date, err := parseDate(c.DefaultQuery("date", time.Now().Format("2006-01-02")))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		return
	}

	sheet, err := h.service.MarkSheet(c.Request.Context(), principal.ID, timetableID, date)
	if err != nil {
		h.writeLectureError(c, err, "Failed to load mark sheet")
		return
	}

	response.Success(c, http.StatusOK, sheet)
}

func (h *Handler) MarkAttendance(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", fieldErrs)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		return
	}

	if err := h.service.Mark(c.Request.Context(), principal.ID, req.TimetableID, date, req.Entries); err != nil {
		h.writeLectureError(c, err, "Failed to mark attendance")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "attendance marked",
	})
}

func (h *Handler) SubmitAttendance(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", fieldErrs)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD")
		return
	}

	if err := h.service.SubmitLecture(c.Request.Context(), principal.ID, req.TimetableID, date); err != nil {
		h.writeLectureError(c, err, "Failed to submit attendance")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "attendance submitted",
	})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	dash, err := h.service.Dashboard(c.Request.Context(), principal.ID, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, dash)
}

func (h *Handler) GetTeacherProfile(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	profile, err := h.service.TeacherProfile(c.Request.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, ErrTeacherNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Teacher not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"profile": profile,
	})
}

// GetCurrentLecture answers "what am I teaching right now". Outside any
// time slot, or in a free slot, data is null.
func (h *Handler) GetCurrentLecture(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	lecture, err := h.service.CurrentLecture(c.Request.Context(), principal.ID, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Failed to load current lecture")
		return
	}
	if lecture == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}
	response.Success(c, http.StatusOK, lecture)
}

func (h *Handler) GetCalendar(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	timetableID, err := strconv.ParseInt(c.Query("timetable_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid timetable id")
		return
	}
	rollNo, err := strconv.ParseInt(c.Query("student_rollno"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student rollno")
		return
	}
	month, err := time.ParseInLocation("2006-01", c.DefaultQuery("month", time.Now().Format("2006-01")), time.UTC)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Month must be YYYY-MM")
		return
	}

	days, err := h.service.Calendar(c.Request.Context(), principal.ID, timetableID, rollNo, month)
	if err != nil {
		h.writeLectureError(c, err, "Failed to load calendar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"days": days,
	})
}

func (h *Handler) GetSummary(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	timetableID, err := strconv.ParseInt(c.Query("timetable_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid timetable id")
		return
	}

	summary, err := h.service.SummaryForLecture(c.Request.Context(), principal.ID, timetableID)
	if err != nil {
		h.writeLectureError(c, err, "Failed to load summary")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"students": summary,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	profile, err := h.service.Profile(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"profile": profile,
	})
}

func (h *Handler) GetOverall(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	totals, err := h.service.Overall(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to load attendance")
		return
	}
	response.Success(c, http.StatusOK, totals)
}

func (h *Handler) GetMonthly(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	months, err := h.service.Monthly(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to load attendance")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"months": months,
	})
}

func (h *Handler) GetSubjectWise(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	subjects, err := h.service.SubjectWise(c.Request.Context(), principal.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to load attendance")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"subjects": subjects,
	})
}

func (h *Handler) writeLectureError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrLectureNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lecture not found")
	case errors.Is(err, ErrNotLectureOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't teach this lecture")
	case errors.Is(err, ErrAlreadySubmitted):
		response.Error(c, http.StatusConflict, "ALREADY_SUBMITTED", "Attendance already submitted for this lecture")
	case errors.Is(err, ErrNothingToSubmit):
		response.Error(c, http.StatusBadRequest, "NO_MARKS", "No marks recorded for this lecture")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be Present or Absent")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}
