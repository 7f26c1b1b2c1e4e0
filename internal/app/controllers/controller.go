// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// Controllers groups every HTTP controller the router mounts
type Controllers struct {
	Auth             *AuthController
	Student          *StudentController
	Professor        *ProfessorController
	Course           *CourseController
	Grade            *GradeController
	ExamRegistration *ExamRegistrationController
	Notification     *NotificationController
	Schedule         *ScheduleController
	Stats            *StatsController
}

// NewControllers builds the controllers on top of the services
func NewControllers(s *services.Services, logger zerolog.Logger) *Controllers {
	return &Controllers{
		Auth:             NewAuthController(s.AuthService, logger),
		Student:          NewStudentController(s.StudentService, logger),
		Professor:        NewProfessorController(s.ProfessorService, logger),
		Course:           NewCourseController(s.CourseService, logger),
		Grade:            NewGradeController(s.GradeService, logger),
		ExamRegistration: NewExamRegistrationController(s.ExamRegistrationService, logger),
		Notification:     NewNotificationController(s.NotificationService, logger),
		Schedule:         NewScheduleController(s.ScheduleService, logger),
		Stats:            NewStatsController(s.StatsService, logger),
	}
}

// idParam reads a path parameter holding a document id. A malformed id is
// answered with 400 and false is returned.
func idParam(ctx *gin.Context, name string) (models.ObjectID, bool) {
	raw := ctx.Param(name)
	if !validation.CompiledPatterns.ObjectID.MatchString(raw) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id format").WithField(name)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return models.ObjectID(raw), true
}

// actor returns the authenticated caller set by the JWT middleware
func actor(ctx *gin.Context) (services.Actor, bool) {
	userID, role, ok := middleware.CurrentUser(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, Role: role}, true
}

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}
