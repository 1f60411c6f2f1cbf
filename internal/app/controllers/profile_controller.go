package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/services"
	"github.com/yassine/stagelink/internal/middleware"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

// ProfileController handles candidate and company profile operations
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetCandidateProfile handles retrieving the caller's candidate profile
// @Summary Get candidate profile
// @Description Retrieves the authenticated candidate's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Success 200 {object} dto.CandidateProfileResponse "Profile retrieved"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /profiles/candidate [get]
func (c *ProfileController) GetCandidateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.profileService.GetCandidateProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateCandidateProfile handles updating the caller's candidate profile
// @Summary Update candidate profile
// @Description Updates the authenticated candidate's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body dto.UpdateCandidateProfileRequest true "Profile data"
// @Success 200 {object} dto.CandidateProfileResponse "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Security BearerAuth
// @Router /profiles/candidate [put]
func (c *ProfileController) UpdateCandidateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCandidateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.profileService.UpdateCandidateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetCompanyProfile handles retrieving the caller's company profile
// @Summary Get company profile
// @Description Retrieves the authenticated company's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Success 200 {object} dto.CompanyProfileResponse "Profile retrieved"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /profiles/company [get]
func (c *ProfileController) GetCompanyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resp, err := c.profileService.GetCompanyProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateCompanyProfile handles updating the caller's company profile
// @Summary Update company profile
// @Description Updates the authenticated company's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body dto.UpdateCompanyProfileRequest true "Profile data"
// @Success 200 {object} dto.CompanyProfileResponse "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Security BearerAuth
// @Router /profiles/company [put]
func (c *ProfileController) UpdateCompanyProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCompanyProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.profileService.UpdateCompanyProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UploadResume handles resume upload for candidates
// @Summary Upload a resume
// @Description Stores a resume file for the authenticated candidate, replacing any previous one
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file (PDF or Word, max 5 MB)"
// @Success 200 {object} dto.ResumeUploadResponse "Resume stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid file"
// @Security BearerAuth
// @Router /profiles/candidate/resume [post]
func (c *ProfileController) UploadResume(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "resume file is required"))
		return
	}

	resp, err := c.profileService.UploadResume(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
