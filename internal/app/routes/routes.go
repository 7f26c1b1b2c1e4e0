package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/facultyhub/internal/app/controllers"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	notificationSocket gin.HandlerFunc,
) {
	api := router.Group("/api")

	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleProfessor)
	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", c.Auth.Profile)
		authenticated.PUT("/auth/change-password", c.Auth.ChangePassword)

		students := authenticated.Group("/students")
		{
			students.GET("", staff, c.Student.List)
			students.GET("/stats/overview", staff, c.Student.Stats)
			students.GET("/:id", c.Student.Get)
			students.POST("", adminOnly, c.Student.Create)
			students.PUT("/:id", c.Student.Update)
			students.DELETE("/:id", adminOnly, c.Student.Delete)
		}

		professors := authenticated.Group("/professors")
		{
			professors.GET("", c.Professor.List)
			professors.GET("/:id", c.Professor.Get)
			professors.POST("", adminOnly, c.Professor.Create)
			professors.PUT("/:id", staff, c.Professor.Update)
			professors.DELETE("/:id", adminOnly, c.Professor.Delete)
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", c.Course.List)
			courses.GET("/professor/:professorId", c.Course.ByProfessor)
			courses.GET("/:id", c.Course.Get)
			courses.POST("", staff, c.Course.Create)
			courses.PUT("/:id", staff, c.Course.Update)
			courses.DELETE("/:id", adminOnly, c.Course.Delete)
		}

		// Notifications live under /grades where the web client expects them
		grades := authenticated.Group("/grades")
		{
			grades.GET("/my-grades", authMiddleware.RoleRequired(models.RoleStudent), c.Grade.MyGrades)
			grades.POST("", staff, c.Grade.Record)
			grades.GET("/notifications", c.Notification.List)
			grades.PUT("/notifications/:notificationId/read", c.Notification.MarkRead)
		}

		exams := authenticated.Group("/exam-registrations")
		{
			exams.GET("/available-courses", c.ExamRegistration.AvailableCourses)
			exams.GET("/professors", c.ExamRegistration.Professors)
			exams.GET("/my-registrations", authMiddleware.RoleRequired(models.RoleStudent), c.ExamRegistration.MyRegistrations)
			exams.GET("", staff, c.ExamRegistration.List)
			exams.POST("", authMiddleware.RoleRequired(models.RoleStudent), c.ExamRegistration.Create)
			exams.DELETE("/:id", authMiddleware.RoleRequired(models.RoleStudent), c.ExamRegistration.Cancel)
			exams.PUT("/:id/status", adminOnly, c.ExamRegistration.SetStatus)
		}

		schedule := authenticated.Group("/schedule")
		{
			schedule.GET("/my-schedule", c.Schedule.Mine)
			schedule.GET("/student/:studentId", staff, c.Schedule.Student)
			schedule.GET("/professor/:professorId", c.Schedule.Professor)
			schedule.GET("/department/:department", c.Schedule.Department)
			schedule.GET("/room/:room", c.Schedule.Room)
		}

		stats := authenticated.Group("/stats")
		{
			stats.GET("/dashboard", c.Stats.Dashboard)
			stats.GET("/activities", c.Stats.Activities)
		}

		if notificationSocket != nil {
			authenticated.GET("/ws/notifications", notificationSocket)
		}
	}

	// Health check endpoint (public)
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
