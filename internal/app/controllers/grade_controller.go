package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
)

// GradeController handles the grade ledger endpoints
type GradeController struct {
	gradeService *services.GradeService
	logger       zerolog.Logger
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService, logger zerolog.Logger) *GradeController {
	return &GradeController{
		gradeService: gradeService,
		logger:       logger,
	}
}

// MyGrades lists the logged in student's grades
// @Summary My grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeView}
// @Router /grades/my-grades [get]
func (c *GradeController) MyGrades(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}

	grades, err := c.gradeService.GradesForUser(ctx.Request.Context(), caller.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, grades, "")
}

// Record creates or replaces the grade of a student for a course and
// academic year
// @Summary Record grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordGradeRequest true "Grade"
// @Success 201 {object} dto.APIResponse{data=dto.GradeResult} "Grade created"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResult} "Grade updated"
// @Failure 403 {object} dto.ErrorResponse "Professor profile not found"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Router /grades [post]
func (c *GradeController) Record(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	var req dto.RecordGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.gradeService.RecordGradeAs(ctx.Request.Context(), caller.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if result.WasUpdate {
		respond(ctx, http.StatusOK, result, "Grade updated successfully")
		return
	}
	respond(ctx, http.StatusCreated, result, "Grade created successfully")
}
