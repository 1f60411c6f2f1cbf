package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/services"
	"github.com/yassine/stagelink/internal/middleware"
	"github.com/yassine/stagelink/internal/pkg/helpers"
)

// AdminController handles administrative operations
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// GetUsers handles listing platform users
// @Summary List users
// @Description Lists platform users with optional role filtering
// @Tags admin
// @Accept json
// @Produce json
// @Param role query string false "Filter by role (CANDIDATE, COMPANY, ADMIN)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.UserListResponse "Users retrieved"
// @Security BearerAuth
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.adminService.GetUsers(ctx.Request.Context(), ctx.Query("role"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeactivateUser handles disabling a user account
// @Summary Deactivate a user
// @Description Disables a user account and revokes its sessions
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse "User deactivated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/deactivate [post]
func (c *AdminController) DeactivateUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.adminService.SetUserActive(ctx.Request.Context(), id, false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User deactivated"})
}

// ActivateUser handles re-enabling a user account
// @Summary Activate a user
// @Description Re-enables a disabled user account
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse "User activated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/activate [post]
func (c *AdminController) ActivateUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.adminService.SetUserActive(ctx.Request.Context(), id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User activated"})
}
