package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/services"
	"github.com/yassine/stagelink/internal/middleware"
)

// ApplicationController handles application related operations
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// CreateApplication handles application submission
// @Summary Apply to an offer
// @Description Submits an application to an offer on behalf of the authenticated candidate
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.CreateApplicationRequest true "Application data"
// @Success 201 {object} dto.ApplicationResponse "Application created"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duplicate application"
// @Security BearerAuth
// @Router /applications [post]
func (c *ApplicationController) CreateApplication(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.applicationService.CreateApplication(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetApplications handles listing applications
// @Summary List applications
// @Description Lists applications visible to the caller. Candidates see their own submissions, companies see applications on their offers, admins see everything.
// @Tags applications
// @Accept json
// @Produce json
// @Param status query string false "Filter by status (PENDING, ACCEPTED, REJECTED)"
// @Param offerId query int false "Filter by offer ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.ApplicationListResponse "Applications retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Security BearerAuth
// @Router /applications [get]
func (c *ApplicationController) GetApplications(ctx *gin.Context) {
	var filter dto.ApplicationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.applicationService.GetApplications(ctx.Request.Context(), middleware.CurrentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetApplicationByID handles retrieving a single application
// @Summary Get an application
// @Description Retrieves an application if the caller submitted it, owns the offer, or is an admin
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.ApplicationResponse "Application retrieved"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id} [get]
func (c *ApplicationController) GetApplicationByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.applicationService.GetApplicationByID(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateApplication handles application updates
// @Summary Update an application
// @Description Candidates can edit their cover message. Companies owning the offer and admins can change the status, which notifies the candidate.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationRequest true "Update data"
// @Success 200 {object} dto.ApplicationResponse "Application updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to decide on this application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id} [put]
func (c *ApplicationController) UpdateApplication(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.applicationService.UpdateApplication(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteApplication handles application withdrawal
// @Summary Withdraw an application
// @Description Deletes an application. Only the submitting candidate and admins can delete one.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.SuccessResponse "Application deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete this application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id} [delete]
func (c *ApplicationController) DeleteApplication(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicationService.DeleteApplication(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Application deleted"})
}

// GetMyApplications handles listing the caller's own applications
// @Summary List my applications
// @Description Lists the caller's applications: submitted ones for candidates, received ones for companies
// @Tags applications
// @Accept json
// @Produce json
// @Param status query string false "Filter by status (PENDING, ACCEPTED, REJECTED)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.ApplicationListResponse "Applications retrieved"
// @Security BearerAuth
// @Router /applications/mine [get]
func (c *ApplicationController) GetMyApplications(ctx *gin.Context) {
	var filter dto.ApplicationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.applicationService.GetApplications(ctx.Request.Context(), middleware.CurrentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetOfferApplications handles listing the applications on one offer
// @Summary List applications for an offer
// @Description Lists applications on a given offer, restricted to what the caller may see
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param status query string false "Filter by status (PENDING, ACCEPTED, REJECTED)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.ApplicationListResponse "Applications retrieved"
// @Security BearerAuth
// @Router /offers/{id}/applications [get]
func (c *ApplicationController) GetOfferApplications(ctx *gin.Context) {
	offerID, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var filter dto.ApplicationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	filter.OfferID = offerID

	resp, err := c.applicationService.GetApplications(ctx.Request.Context(), middleware.CurrentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// AcceptApplication handles accepting an application
// @Summary Accept an application
// @Description Accepts an application on an offer owned by the caller's company
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.ApplicationResponse "Application accepted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to decide this application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id}/accept [post]
func (c *ApplicationController) AcceptApplication(ctx *gin.Context) {
	c.decideApplication(ctx, models.ApplicationAccepted)
}

// RejectApplication handles rejecting an application
// @Summary Reject an application
// @Description Rejects an application on an offer owned by the caller's company
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.ApplicationResponse "Application rejected"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to decide this application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id}/reject [post]
func (c *ApplicationController) RejectApplication(ctx *gin.Context) {
	c.decideApplication(ctx, models.ApplicationRejected)
}

func (c *ApplicationController) decideApplication(ctx *gin.Context, status models.ApplicationStatus) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.applicationService.DecideApplication(ctx.Request.Context(), middleware.CurrentActor(ctx), id, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
