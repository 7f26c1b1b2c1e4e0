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

// ProfessorController handles professor profile endpoints
type ProfessorController struct {
	professorService services.ProfessorService
	logger           zerolog.Logger
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService services.ProfessorService, logger zerolog.Logger) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
		logger:           logger,
	}
}

// List returns professors matching the query filters
// @Summary List professors
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department"
// @Param status query string false "Status"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /professors [get]
func (c *ProfessorController) List(ctx *gin.Context) {
	var filter dto.ProfessorFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	views, info, err := c.professorService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.PaginatedResponse{Items: views, Pagination: info}, "")
}

// Get returns one professor with its user
// @Summary Get professor
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professors/{id} [get]
func (c *ProfessorController) Get(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.professorService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "")
}

// Create creates a professor account and profile
// @Summary Create professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfessorRequest true "Professor"
// @Success 201 {object} dto.APIResponse
// @Router /professors [post]
func (c *ProfessorController) Create(ctx *gin.Context) {
	var req dto.CreateProfessorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.professorService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, view, "Professor created successfully")
}

// Update merges the request into a professor profile. Professors may only
// update their own.
// @Summary Update professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Param request body dto.UpdateProfessorRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Router /professors/{id} [put]
func (c *ProfessorController) Update(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfessorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.professorService.Update(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "Professor updated successfully")
}

// Delete removes a professor and its user
// @Summary Delete professor
// @Tags professors
// @Security BearerAuth
// @Param id path string true "Professor id"
// @Success 200 {object} dto.APIResponse
// @Router /professors/{id} [delete]
func (c *ProfessorController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.professorService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Professor deleted successfully")
}
