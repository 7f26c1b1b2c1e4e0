package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
)

// NotificationController serves the notification inbox of students and
// professors
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the caller's notifications. Students get their unread grade
// notifications; professors get their inbox, optionally only unread.
// @Summary Notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread (professors)"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Caller has no inbox"
// @Router /grades/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}

	recipient, err := c.notificationService.RecipientOf(ctx.Request.Context(), caller.UserID, caller.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var notifications []models.Notification
	if caller.Role == models.RoleStudent {
		notifications, err = c.notificationService.ListUnread(ctx.Request.Context(), recipient)
	} else {
		notifications, err = c.notificationService.ListForRecipient(ctx.Request.Context(), recipient, ctx.Query("unread") == "true")
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respond(ctx, http.StatusOK, notifications, "")
}

// MarkRead flags one of the caller's notifications read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path string true "Notification id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /grades/notifications/{notificationId}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	caller, ok := actor(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "notificationId")
	if !ok {
		return
	}

	recipient, err := c.notificationService.RecipientOf(ctx.Request.Context(), caller.UserID, caller.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	notification, err := c.notificationService.MarkReadAs(ctx.Request.Context(), id, recipient)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, notification, "Notification marked as read")
}
