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

// CourseController handles course endpoints
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// List returns the active courses matching the query filters
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department"
// @Param year query int false "Year"
// @Param semester query int false "Semester"
// @Param professor query string false "Professor id"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	views, info, err := c.courseService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.PaginatedResponse{Items: views, Pagination: info}, "")
}

// Get returns one course with professor and prerequisites populated
// @Summary Get course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.courseService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "")
}

// ByProfessor lists the courses a professor teaches
// @Summary Courses of a professor
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param professorId path string true "Professor id"
// @Success 200 {object} dto.APIResponse
// @Router /courses/professor/{professorId} [get]
func (c *CourseController) ByProfessor(ctx *gin.Context) {
	professorID, ok := idParam(ctx, "professorId")
	if !ok {
		return
	}

	views, err := c.courseService.ByProfessor(ctx.Request.Context(), professorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, views, "")
}

// Create creates a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Course code taken"
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.courseService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, view, "Course created successfully")
}

// Update merges the request into a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Router /courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.courseService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "Course updated successfully")
}

// Delete removes a course
// @Summary Delete course
// @Tags courses
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} dto.APIResponse
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Course deleted successfully")
}
