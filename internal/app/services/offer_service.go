package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	authz "github.com/yassine/stagelink/internal/app/auth"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/repositories"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/helpers"
	"github.com/yassine/stagelink/internal/pkg/validation"
)

// OfferService defines the interface for internship offer operations
type OfferService interface {
	GetOffers(ctx context.Context, actor *authz.Actor, filter *dto.OfferFilterRequest) (*dto.OfferListResponse, error)
	GetOfferByID(ctx context.Context, actor *authz.Actor, id int64) (*dto.OfferResponse, error)
	CreateOffer(ctx context.Context, actor *authz.Actor, req *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	UpdateOffer(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error)
	DeleteOffer(ctx context.Context, actor *authz.Actor, id int64) error
}

type offerRepository interface {
	GetAll(ctx context.Context, filter repositories.OfferFilter) ([]models.Offer, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Offer, error)
	Create(ctx context.Context, offer *models.Offer) (int64, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id int64) error
}

type companyResolver interface {
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.CompanyProfile, error)
}

// offerServiceImpl implements OfferService
type offerServiceImpl struct {
	offerRepo    offerRepository
	companies    companyResolver
	authzService *authz.AuthorizationService
}

// NewOfferService creates a new OfferService
func NewOfferService(offerRepo offerRepository, companies companyResolver, authzService *authz.AuthorizationService) OfferService {
	return &offerServiceImpl{
		offerRepo:    offerRepo,
		companies:    companies,
		authzService: authzService,
	}
}

// GetOffers lists offers visible to the actor. Companies only see their own
// offers, admins see everything, everyone else sees available offers.
func (s *offerServiceImpl) GetOffers(ctx context.Context, actor *authz.Actor, filter *dto.OfferFilterRequest) (*dto.OfferListResponse, error) {
	page, pageSize := normalizePage(filter.Page, filter.Size)

	repoFilter := repositories.OfferFilter{
		Search:   filter.Search,
		City:     filter.City,
		Field:    filter.Field,
		Type:     filter.Type,
		IsActive: filter.IsActive,
		Page:     page,
		PageSize: pageSize,
	}

	switch {
	case actor.IsAdmin():
		// No visibility restriction
	case actor != nil && actor.Role == models.RoleCompany:
		company, err := s.companies.GetCompanyByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("error resolving company profile: %w", err)
		}
		repoFilter.CompanyID = &company.ID
	default:
		repoFilter.OnlyAvailable = true
	}

	offers, total, err := s.offerRepo.GetAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("error getting offers: %w", err)
	}

	today := helpers.Today()
	responses := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		responses = append(responses, dto.FromOffer(&offers[i], today))
	}

	return &dto.OfferListResponse{
		Offers:     responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetOfferByID retrieves a single offer if the actor may see it
func (s *offerServiceImpl) GetOfferByID(ctx context.Context, actor *authz.Actor, id int64) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateOfferView(ctx, actor, offer); err != nil {
		return nil, err
	}

	resp := dto.FromOffer(offer, helpers.Today())
	return &resp, nil
}

// CreateOffer creates an offer owned by the caller's company. Admins create
// offers for an explicitly named company and may schedule them in the past.
func (s *offerServiceImpl) CreateOffer(ctx context.Context, actor *authz.Actor, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	var company *models.CompanyProfile
	switch {
	case actor.IsAdmin():
		if req.CompanyID == nil {
			return nil, apperrors.NewValidationError("companyId", "companyId is required for admin-created offers")
		}
		var err error
		if company, err = s.companies.GetCompanyByID(ctx, *req.CompanyID); err != nil {
			return nil, err
		}
	case actor != nil && actor.Role == models.RoleCompany:
		var err error
		company, err = s.companies.GetCompanyByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return nil, authz.ErrNotCompany
			}
			return nil, fmt.Errorf("error resolving company profile: %w", err)
		}
	default:
		return nil, authz.ErrNotCompany
	}

	offer := &models.Offer{
		CompanyID:    company.ID,
		Title:        req.Title,
		Description:  req.Description,
		Field:        req.Field,
		City:         req.City,
		Type:         models.InternshipType(req.Type),
		Duration:     req.Duration,
		Capacity:     req.Capacity,
		Compensation: req.Compensation,
		IsActive:     true,
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if err := applyOfferDates(offer, req.StartDate, req.EndDate, req.Deadline); err != nil {
		return nil, err
	}
	if err := validateOfferSchedule(offer, actor.IsAdmin()); err != nil {
		return nil, err
	}

	id, err := s.offerRepo.Create(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("error creating offer: %w", err)
	}

	created, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error reading created offer: %w", err)
	}

	resp := dto.FromOffer(created, helpers.Today())
	return &resp, nil
}

// UpdateOffer updates an offer. Company users must own the offer; admins can
// update any offer.
func (s *offerServiceImpl) UpdateOffer(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if err := s.authzService.ValidateOfferOwnership(ctx, id, actor.UserID); err != nil {
			return nil, err
		}
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.Field = req.Field
	offer.City = req.City
	offer.Type = models.InternshipType(req.Type)
	offer.Duration = req.Duration
	offer.Capacity = req.Capacity
	offer.Compensation = req.Compensation
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	offer.StartDate, offer.EndDate, offer.Deadline = nil, nil, nil
	if err := applyOfferDates(offer, req.StartDate, req.EndDate, req.Deadline); err != nil {
		return nil, err
	}
	if err := validateOfferSchedule(offer, actor.IsAdmin()); err != nil {
		return nil, err
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("error updating offer: %w", err)
	}

	updated, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error reading updated offer: %w", err)
	}

	resp := dto.FromOffer(updated, helpers.Today())
	return &resp, nil
}

// DeleteOffer removes an offer and, through the schema constraints, all of its
// applications. Company users must own the offer; admins can delete any offer.
func (s *offerServiceImpl) DeleteOffer(ctx context.Context, actor *authz.Actor, id int64) error {
	if !actor.IsAdmin() {
		if err := s.authzService.ValidateOfferOwnership(ctx, id, actor.UserID); err != nil {
			return err
		}
	}
	return s.offerRepo.Delete(ctx, id)
}

// applyOfferDates parses the optional date strings onto the offer
func applyOfferDates(offer *models.Offer, startDate, endDate, deadline *string) error {
	parse := func(field string, value *string) (*time.Time, error) {
		if value == nil || *value == "" {
			return nil, nil
		}
		t, err := helpers.ParseDate(*value)
		if err != nil {
			return nil, apperrors.NewValidationError(field, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *value))
		}
		return &t, nil
	}

	var err error
	if offer.StartDate, err = parse("startDate", startDate); err != nil {
		return err
	}
	if offer.EndDate, err = parse("endDate", endDate); err != nil {
		return err
	}
	if offer.Deadline, err = parse("deadline", deadline); err != nil {
		return err
	}
	return nil
}

// validateOfferSchedule checks the duration text, the date ordering and the
// duration's consistency with the start and end dates when both are set.
// Past start dates and deadlines are only accepted when allowPastDates is set.
func validateOfferSchedule(offer *models.Offer, allowPastDates bool) error {
	if _, _, err := validation.ParseDuration(offer.Duration); err != nil {
		return apperrors.NewValidationError("duration", err.Error())
	}

	if offer.StartDate != nil && offer.EndDate != nil {
		if offer.EndDate.Before(*offer.StartDate) {
			return apperrors.NewValidationError("endDate", "end date must be on or after the start date")
		}
		if err := validation.CheckDurationSpan(offer.Duration, *offer.StartDate, *offer.EndDate); err != nil {
			return apperrors.NewValidationError("duration", err.Error())
		}
	}
	if offer.StartDate != nil && offer.Deadline != nil && offer.Deadline.Before(*offer.StartDate) {
		return apperrors.NewValidationError("deadline", "application deadline must be on or after the start date")
	}

	if !allowPastDates {
		today := helpers.Today()
		if offer.StartDate != nil && offer.StartDate.Before(today) {
			return apperrors.NewValidationError("startDate", "start date cannot be in the past")
		}
		if offer.Deadline != nil && offer.Deadline.Before(today) {
			return apperrors.NewValidationError("deadline", "application deadline cannot be in the past")
		}
	}
	return nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = helpers.DefaultPage
	}
	if size <= 0 {
		size = helpers.DefaultPageSize
	}
	if size > helpers.MaxPageSize {
		size = helpers.MaxPageSize
	}
	return page, size
}
