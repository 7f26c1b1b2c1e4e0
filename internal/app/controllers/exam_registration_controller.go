package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/join"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
)

// ExamRegistrationController handles exam sign ups
type ExamRegistrationController struct {
	registrationService *services.ExamRegistrationService
	logger              zerolog.Logger
}

// NewExamRegistrationController creates a new ExamRegistrationController
func NewExamRegistrationController(registrationService *services.ExamRegistrationService, logger zerolog.Logger) *ExamRegistrationController {
	return &ExamRegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}
}

// AvailableCourses lists the courses a student can register an exam for
// @Summary Courses open for registration
// @Tags exam-registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /exam-registrations/available-courses [get]
func (c *ExamRegistrationController) AvailableCourses(ctx *gin.Context) {
	courses, err := c.registrationService.AvailableCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	respond(ctx, http.StatusOK, courses, "")
}

// Professors lists the professor directory for the registration form
// @Summary Professor directory
// @Tags exam-registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfessorDirectoryEntry}
// @Router /exam-registrations/professors [get]
func (c *ExamRegistrationController) Professors(ctx *gin.Context) {
	professors, err := c.registrationService.Professors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if professors == nil {
		professors = []dto.ProfessorDirectoryEntry{}
	}
	respond(ctx, http.StatusOK, professors, "")
}

// Create registers the logged in student for an exam
// @Summary Register for exam
// @Tags exam-registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRegistrationRequest true "Registration"
// @Success 201 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Student profile or course not found"
// @Router /exam-registrations [post]
func (c *ExamRegistrationController) Create(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	var req dto.CreateExamRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	reg, err := c.registrationService.CreateAs(ctx.Request.Context(), caller.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, reg, "Exam registration created successfully")
}

// MyRegistrations lists the logged in student's registrations
// @Summary My exam registrations
// @Tags exam-registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /exam-registrations/my-registrations [get]
func (c *ExamRegistrationController) MyRegistrations(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}

	regs, err := c.registrationService.ListForStudentUser(ctx.Request.Context(), caller.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if regs == nil {
		regs = []models.ExamRegistration{}
	}
	respond(ctx, http.StatusOK, regs, "")
}

// List returns every registration to administrators and the registrations
// for their own courses to professors
// @Summary List exam registrations
// @Tags exam-registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /exam-registrations [get]
func (c *ExamRegistrationController) List(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}

	var (
		views []join.View
		err   error
	)
	if caller.IsAdmin() {
		views, err = c.registrationService.ListAll(ctx.Request.Context())
	} else {
		views, err = c.registrationService.ListForProfessorUser(ctx.Request.Context(), caller.UserID)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if views == nil {
		views = []join.View{}
	}
	respond(ctx, http.StatusOK, views, "")
}

// Cancel withdraws one of the student's pending registrations
// @Summary Cancel exam registration
// @Tags exam-registrations
// @Security BearerAuth
// @Param id path string true "Registration id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 409 {object} dto.ErrorResponse "Registration already decided"
// @Router /exam-registrations/{id} [delete]
func (c *ExamRegistrationController) Cancel(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.registrationService.CancelAs(ctx.Request.Context(), caller.UserID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Exam registration cancelled successfully")
}

// SetStatus approves or rejects a pending registration
// @Summary Decide exam registration
// @Tags exam-registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration id"
// @Param request body dto.UpdateRegistrationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Registration already decided"
// @Router /exam-registrations/{id}/status [put]
func (c *ExamRegistrationController) SetStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateRegistrationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	reg, err := c.registrationService.SetStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, reg, "Exam registration updated")
}
