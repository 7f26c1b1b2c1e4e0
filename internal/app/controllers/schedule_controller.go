package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
)

// ScheduleController serves weekly timetables
type ScheduleController struct {
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// Mine returns the caller's own timetable
// @Summary My schedule
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Router /schedule/my-schedule [get]
func (c *ScheduleController) Mine(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	c.write(ctx)(c.scheduleService.ForUser(ctx.Request.Context(), caller.UserID))
}

// Student returns a student's timetable
// @Summary Student schedule
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student id"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Router /schedule/student/{studentId} [get]
func (c *ScheduleController) Student(ctx *gin.Context) {
	id, ok := idParam(ctx, "studentId")
	if !ok {
		return
	}
	c.write(ctx)(c.scheduleService.ForStudent(ctx.Request.Context(), id))
}

// Professor returns the timetable of a professor's courses
// @Summary Professor schedule
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param professorId path string true "Professor id"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Router /schedule/professor/{professorId} [get]
func (c *ScheduleController) Professor(ctx *gin.Context) {
	id, ok := idParam(ctx, "professorId")
	if !ok {
		return
	}
	c.write(ctx)(c.scheduleService.ForProfessor(ctx.Request.Context(), id))
}

// Department returns a department's timetable
// @Summary Department schedule
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param department path string true "Department"
// @Param year query int false "Year"
// @Param semester query int false "Semester"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Router /schedule/department/{department} [get]
func (c *ScheduleController) Department(ctx *gin.Context) {
	year, _ := strconv.Atoi(ctx.Query("year"))
	semester, _ := strconv.Atoi(ctx.Query("semester"))
	c.write(ctx)(c.scheduleService.ForDepartment(ctx.Request.Context(), ctx.Param("department"), year, semester))
}

// Room returns the courses held in a room
// @Summary Room schedule
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param room path string true "Room"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Router /schedule/room/{room} [get]
func (c *ScheduleController) Room(ctx *gin.Context) {
	c.write(ctx)(c.scheduleService.ForRoom(ctx.Request.Context(), ctx.Param("room")))
}

func (c *ScheduleController) write(ctx *gin.Context) func(*dto.ScheduleResponse, error) {
	return func(schedule *dto.ScheduleResponse, err error) {
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		respond(ctx, http.StatusOK, schedule, "")
	}
}
