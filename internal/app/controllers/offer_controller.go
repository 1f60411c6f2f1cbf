package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/services"
	"github.com/yassine/stagelink/internal/middleware"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

// OfferController handles internship offer related operations
type OfferController struct {
	offerService services.OfferService
}

// NewOfferController creates a new OfferController
func NewOfferController(offerService services.OfferService) *OfferController {
	return &OfferController{offerService: offerService}
}

// GetOffers handles listing offers
// @Summary List offers
// @Description Lists offers visible to the caller. Anonymous visitors and candidates see available offers, companies see their own, admins see everything.
// @Tags offers
// @Accept json
// @Produce json
// @Param search query string false "Search in title, description and company name"
// @Param city query string false "Filter by city"
// @Param field query string false "Filter by field"
// @Param type query string false "Filter by type (ON_SITE, REMOTE, HYBRID)"
// @Param isActive query bool false "Filter by active flag"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.OfferListResponse "Offers retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Router /offers [get]
func (c *OfferController) GetOffers(ctx *gin.Context) {
	var filter dto.OfferFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.offerService.GetOffers(ctx.Request.Context(), middleware.CurrentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetOfferByID handles retrieving a single offer
// @Summary Get an offer
// @Description Retrieves an offer by ID if the caller may see it
// @Tags offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} dto.OfferResponse "Offer retrieved"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Router /offers/{id} [get]
func (c *OfferController) GetOfferByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.offerService.GetOfferByID(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateOffer handles offer creation
// @Summary Create an offer
// @Description Creates an internship offer owned by the caller's company. Admins name the owning company through companyId.
// @Tags offers
// @Accept json
// @Produce json
// @Param request body dto.CreateOfferRequest true "Offer data"
// @Success 201 {object} dto.OfferResponse "Offer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a company"
// @Security BearerAuth
// @Router /offers [post]
func (c *OfferController) CreateOffer(ctx *gin.Context) {
	var req dto.CreateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.offerService.CreateOffer(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// UpdateOffer handles offer updates
// @Summary Update an offer
// @Description Updates an offer. Companies can only update their own offers; admins can update any offer.
// @Tags offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Param request body dto.UpdateOfferRequest true "Offer data"
// @Success 200 {object} dto.OfferResponse "Offer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Security BearerAuth
// @Router /offers/{id} [put]
func (c *OfferController) UpdateOffer(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.offerService.UpdateOffer(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteOffer handles offer deletion
// @Summary Delete an offer
// @Description Deletes an offer and all applications submitted to it. Companies can only delete their own offers; admins can delete any offer.
// @Tags offers
// @Accept json
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} dto.SuccessResponse "Offer deleted"
// @Failure 404 {object} dto.ErrorResponse "Offer not found"
// @Security BearerAuth
// @Router /offers/{id} [delete]
func (c *OfferController) DeleteOffer(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.offerService.DeleteOffer(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Offer deleted"})
}

// parseIDParam parses the :id path parameter
func parseIDParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id", "invalid resource id")
	}
	return id, nil
}

// GetMyOffers handles listing the caller's company offers
// @Summary List my offers
// @Description Lists every offer of the caller's company, including expired and full ones
// @Tags offers
// @Accept json
// @Produce json
// @Param search query string false "Search in title and description"
// @Param city query string false "Filter by city"
// @Param field query string false "Filter by field"
// @Param type query string false "Filter by type (ON_SITE, REMOTE, HYBRID)"
// @Param isActive query bool false "Filter by active flag"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.OfferListResponse "Offers retrieved"
// @Security BearerAuth
// @Router /offers/mine [get]
func (c *OfferController) GetMyOffers(ctx *gin.Context) {
	var filter dto.OfferFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.offerService.GetOffers(ctx.Request.Context(), middleware.CurrentActor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
