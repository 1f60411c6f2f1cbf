package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// Common errors specific to authorization that aren't in the central apperrors
var (
	ErrNotCandidate     = errors.New("only candidates can perform this action")
	ErrNotCompany       = errors.New("only companies can perform this action")
	ErrPermissionDenied = errors.New("you don't have permission for this action")
)

// Actor identifies the authenticated user performing an action. A nil Actor
// represents an anonymous request.
type Actor struct {
	UserID int64
	Role   models.Role
}

// IsAdmin reports whether the actor is an administrator
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

type userStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetCandidateByUserID(ctx context.Context, userID int64) (*models.CandidateProfile, error)
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error)
}

type offerStore interface {
	GetByID(ctx context.Context, id int64) (*models.Offer, error)
}

type applicationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Application, error)
}

// AuthorizationService centralizes access decisions across offers and
// applications
type AuthorizationService struct {
	users        userStore
	offers       offerStore
	applications applicationStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users userStore, offers offerStore, applications applicationStore) *AuthorizationService {
	return &AuthorizationService{
		users:        users,
		offers:       offers,
		applications: applications,
	}
}

// CanViewOffer reports whether the actor may see the given offer.
// Anonymous visitors and candidates only see available offers. Companies see
// their own offers regardless of availability. Admins see everything.
func (s *AuthorizationService) CanViewOffer(ctx context.Context, actor *Actor, offer *models.Offer) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	if actor != nil && actor.Role == models.RoleCompany {
		company, err := s.users.GetCompanyByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return false, nil
			}
			return false, err
		}
		if company.ID == offer.CompanyID {
			return true, nil
		}
	}
	return offer.IsAvailable(todayUTC()), nil
}

// ValidateOfferView returns ErrOfferNotFound when the actor may not see the
// offer, hiding its existence.
func (s *AuthorizationService) ValidateOfferView(ctx context.Context, actor *Actor, offer *models.Offer) error {
	ok, err := s.CanViewOffer(ctx, actor, offer)
	if err != nil {
		return fmt.Errorf("failed to check offer visibility: %w", err)
	}
	if !ok {
		return apperrors.ErrOfferNotFound
	}
	return nil
}

// CanModifyOffer checks if the user owns the offer through their company profile
func (s *AuthorizationService) CanModifyOffer(ctx context.Context, offerID, userID int64) (bool, error) {
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return false, err
	}

	company, err := s.users.GetCompanyByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting company by user ID")
		return false, fmt.Errorf("error getting company: %w", err)
	}

	return offer.CompanyID == company.ID, nil
}

// ValidateOfferOwnership validates that the user owns the offer. A foreign
// offer is reported as not found rather than forbidden.
func (s *AuthorizationService) ValidateOfferOwnership(ctx context.Context, offerID, userID int64) error {
	canModify, err := s.CanModifyOffer(ctx, offerID, userID)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrOfferNotFound
	}
	return nil
}

// CanViewApplication reports whether the user may see the given application.
// Allowed for the candidate who submitted it, the company owning its offer,
// and admins.
func (s *AuthorizationService) CanViewApplication(ctx context.Context, app *models.Application, userID int64) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}

	switch user.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleCandidate:
		candidate, err := s.users.GetCandidateByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return false, nil
			}
			return false, err
		}
		return app.CandidateID == candidate.ID, nil
	case models.RoleCompany:
		company, err := s.users.GetCompanyByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return false, nil
			}
			return false, err
		}
		return app.Offer != nil && app.Offer.CompanyID == company.ID, nil
	}
	return false, nil
}

// ValidateApplicationAccess validates that the user may see the application.
// Hidden applications are reported as not found.
func (s *AuthorizationService) ValidateApplicationAccess(ctx context.Context, app *models.Application, userID int64) error {
	ok, err := s.CanViewApplication(ctx, app, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// ValidateApplicationDecision validates that the user owns the offer the
// application targets, which is required to accept or reject it.
func (s *AuthorizationService) ValidateApplicationDecision(ctx context.Context, app *models.Application, userID int64) error {
	company, err := s.users.GetCompanyByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("error getting company: %w", err)
	}
	if app.Offer == nil || app.Offer.CompanyID != company.ID {
		return ErrPermissionDenied
	}
	return nil
}

// GetUserInfo returns user information
func (s *AuthorizationService) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in GetUserInfo")
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	return user, nil
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
