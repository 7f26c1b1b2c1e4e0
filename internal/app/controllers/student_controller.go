package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
	"github.com/yigit/facultyhub/internal/pkg/helpers"
)

// StudentController handles student profile endpoints
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// List returns students matching the query filters
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department"
// @Param year query int false "Year of study"
// @Param status query string false "Status"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	var filter dto.StudentFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	views, info, err := c.studentService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.PaginatedResponse{Items: views, Pagination: info}, "")
}

// Get returns one student with its user
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not your profile"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.studentService.Get(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "")
}

// Create creates a student account and profile
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Email or student id taken"
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, view, "Student created successfully")
}

// Update merges the request into a student profile
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student id"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Router /students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.studentService.Update(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "Student updated successfully")
}

// Delete removes a student and its user
// @Summary Delete student
// @Tags students
// @Security BearerAuth
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse
// @Router /students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Student deleted successfully")
}

// Stats returns counts over the student body
// @Summary Student statistics
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentStatsResponse}
// @Router /students/stats/overview [get]
func (c *StudentController) Stats(ctx *gin.Context) {
	stats, err := c.studentService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, stats, "")
}
