package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"upasthit/internal/config"
	"upasthit/internal/database"
	"upasthit/internal/middleware"
	"upasthit/internal/modules/attendance"
	"upasthit/internal/modules/auth"
	"upasthit/internal/modules/otp"
	"upasthit/internal/modules/timetable"
	"upasthit/internal/pkg/token"
	"upasthit/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	otpRepo := repository.NewOTPRepository(db)

	codec := token.NewCodec(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authService := auth.NewService(studentRepo, teacherRepo, codec)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:        cfg.CookieSecure,
		SameSite:      cfg.CookieSameSite,
		Path:          cfg.CookiePath,
		AccessMaxAge:  cfg.AccessTTL,
		RefreshMaxAge: cfg.RefreshTTL,
	})

	attendanceService := attendance.NewService(attendanceRepo, timetableRepo, studentRepo, teacherRepo)
	attendanceHandler := attendance.NewHandler(attendanceService)

	timetableService := timetable.NewService(timetableRepo, studentRepo)
	timetableHandler := timetable.NewHandler(timetableService)

	otpService := otp.NewService(otpRepo, studentRepo, logMailer{})
	otpHandler := otp.NewHandler(otpService)

	r := gin.New()
	r.Use(middleware.ErrorLogger(), gin.Recovery(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(codec))
		{
			authHandler.RegisterProtectedRoutes(protected)
			timetableHandler.RegisterRoutes(protected)

			student := protected.Group("/student", middleware.StudentOnly())
			attendanceHandler.RegisterStudentRoutes(student)
			otpHandler.RegisterRoutes(student)

			teacher := protected.Group("/teacher", middleware.TeacherOnly())
			attendanceHandler.RegisterTeacherRoutes(teacher)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// logMailer stands in for a real delivery transport; the verification flow
// only needs the Mailer seam.
type logMailer struct{}

func (logMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("mail queued: to=%s subject=%q", to, subject)
	return nil
}
