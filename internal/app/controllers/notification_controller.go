package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/services"
	"github.com/yassine/stagelink/internal/middleware"
	"github.com/yassine/stagelink/internal/pkg/helpers"
)

// NotificationController handles notification related operations
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GetNotifications handles listing the caller's notifications
// @Summary List notifications
// @Description Retrieves the caller's notifications, newest first
// @Tags notifications
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.NotificationListResponse "Notifications retrieved"
// @Security BearerAuth
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.notificationService.GetNotifications(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetUnreadCount handles retrieving the unread notification count
// @Summary Get unread count
// @Description Returns the number of unread notifications for the caller
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse "Unread count retrieved"
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.GetUnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// MarkRead handles marking a notification as read
// @Summary Mark a notification read
// @Description Marks one of the caller's notifications as read
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.SuccessResponse "Notification marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Notification marked read"})
}

// MarkAllRead handles marking all notifications as read
// @Summary Mark all notifications read
// @Description Marks every unread notification of the caller as read
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} dto.SuccessResponse "Notifications marked read"
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if _, err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "All notifications marked read"})
}
