package services

import (
	"context"
	"errors"
	"fmt"

	authz "github.com/yassine/stagelink/internal/app/auth"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/app/repositories"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/helpers"
)

// ApplicationService defines the interface for application operations
type ApplicationService interface {
	CreateApplication(ctx context.Context, userID int64, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	GetApplications(ctx context.Context, actor *authz.Actor, filter *dto.ApplicationFilterRequest) (*dto.ApplicationListResponse, error)
	GetApplicationByID(ctx context.Context, userID, id int64) (*dto.ApplicationResponse, error)
	UpdateApplication(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
	DecideApplication(ctx context.Context, actor *authz.Actor, id int64, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
	DeleteApplication(ctx context.Context, actor *authz.Actor, id int64) error
}

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetAll(ctx context.Context, filter repositories.ApplicationFilter) ([]models.Application, int64, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id int64) error
}

type offerReader interface {
	GetByID(ctx context.Context, id int64) (*models.Offer, error)
}

type profileResolver interface {
	GetCandidateByUserID(ctx context.Context, userID int64) (*models.CandidateProfile, error)
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.CompanyProfile, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo applicationRepository
	offerRepo       offerReader
	profiles        profileResolver
	notifier        NotificationService
	tx              TxRunner
	authzService    *authz.AuthorizationService
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo applicationRepository,
	offerRepo offerReader,
	profiles profileResolver,
	notifier NotificationService,
	tx TxRunner,
	authzService *authz.AuthorizationService,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		offerRepo:       offerRepo,
		profiles:        profiles,
		notifier:        notifier,
		tx:              tx,
		authzService:    authzService,
	}
}

// CreateApplication submits an application to an offer on behalf of the
// candidate user. The owning company is notified in the same transaction.
func (s *applicationServiceImpl) CreateApplication(ctx context.Context, userID int64, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	candidate, err := s.profiles.GetCandidateByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, authz.ErrNotCandidate
		}
		return nil, fmt.Errorf("error resolving candidate profile: %w", err)
	}

	offer, err := s.offerRepo.GetByID(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}

	var appID int64
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		appID, err = s.applicationRepo.Create(txCtx, &models.Application{
			OfferID:     offer.ID,
			CandidateID: candidate.ID,
			Status:      models.ApplicationPending,
			Message:     req.Message,
		})
		if err != nil {
			return err
		}

		company, err := s.profiles.GetCompanyByID(txCtx, offer.CompanyID)
		if err != nil {
			return fmt.Errorf("error resolving offer company: %w", err)
		}

		message := fmt.Sprintf("%s %s applied to %q", candidate.FirstName, candidate.LastName, offer.Title)
		ref := &models.EntityRef{Type: models.RelatedApplication, ID: appID}
		return s.notifier.Notify(txCtx, company.UserID, models.NotificationNewApplication, "New application received", message, ref)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.applicationRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("error reading created application: %w", err)
	}

	resp := dto.FromApplication(created)
	return &resp, nil
}

// GetApplications lists applications visible to the actor. Candidates see
// their own submissions, companies see applications on their offers, admins
// see everything.
func (s *applicationServiceImpl) GetApplications(ctx context.Context, actor *authz.Actor, filter *dto.ApplicationFilterRequest) (*dto.ApplicationListResponse, error) {
	page, pageSize := normalizePage(filter.Page, filter.Size)

	repoFilter := repositories.ApplicationFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if filter.Status != "" {
		status := models.ApplicationStatus(filter.Status)
		repoFilter.Status = &status
	}
	if filter.OfferID > 0 {
		repoFilter.OfferID = &filter.OfferID
	}

	switch actor.Role {
	case models.RoleAdmin:
		// No scoping
	case models.RoleCandidate:
		candidate, err := s.profiles.GetCandidateByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return nil, authz.ErrNotCandidate
			}
			return nil, fmt.Errorf("error resolving candidate profile: %w", err)
		}
		repoFilter.CandidateID = &candidate.ID
	case models.RoleCompany:
		company, err := s.profiles.GetCompanyByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				return nil, authz.ErrNotCompany
			}
			return nil, fmt.Errorf("error resolving company profile: %w", err)
		}
		repoFilter.CompanyID = &company.ID
	default:
		return nil, authz.ErrPermissionDenied
	}

	apps, total, err := s.applicationRepo.GetAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("error getting applications: %w", err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, dto.FromApplication(&apps[i]))
	}

	return &dto.ApplicationListResponse{
		Applications: responses,
		Pagination:   helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetApplicationByID retrieves an application if the user may see it
func (s *applicationServiceImpl) GetApplicationByID(ctx context.Context, userID, id int64) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateApplicationAccess(ctx, app, userID); err != nil {
		return nil, err
	}

	resp := dto.FromApplication(app)
	return &resp, nil
}

// UpdateApplication updates an application. Candidates can only edit their
// cover message; a status present in their request is silently ignored.
// Companies owning the offer and admins can change the status, which notifies
// the candidate in the same transaction.
func (s *applicationServiceImpl) UpdateApplication(ctx context.Context, actor *authz.Actor, id int64, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.ValidateApplicationAccess(ctx, app, actor.UserID); err != nil {
		return nil, err
	}

	var statusChange *models.ApplicationStatus
	switch actor.Role {
	case models.RoleCandidate:
		if req.Message != nil {
			app.Message = req.Message
		}
	case models.RoleCompany, models.RoleAdmin:
		if actor.Role == models.RoleCompany {
			if err := s.authzService.ValidateApplicationDecision(ctx, app, actor.UserID); err != nil {
				return nil, err
			}
		}
		if actor.IsAdmin() && req.Message != nil {
			app.Message = req.Message
		}
		if req.Status != nil {
			status := models.ApplicationStatus(*req.Status)
			app.Status = status
			statusChange = &status
		}
	default:
		return nil, authz.ErrPermissionDenied
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applicationRepo.Update(txCtx, app); err != nil {
			return err
		}
		if statusChange != nil {
			return s.notifyDecision(txCtx, app, *statusChange)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error reading updated application: %w", err)
	}

	resp := dto.FromApplication(updated)
	return &resp, nil
}

// DecideApplication accepts or rejects an application. Only admins and the
// company owning the offer can decide. Re-deciding an already decided
// application is allowed and notifies the candidate again.
func (s *applicationServiceImpl) DecideApplication(ctx context.Context, actor *authz.Actor, id int64, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if actor.Role != models.RoleCompany && !actor.IsAdmin() {
		return nil, authz.ErrPermissionDenied
	}

	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A company deciding on a foreign application gets a permission error,
	// not a missing resource.
	if actor.Role == models.RoleCompany {
		if err := s.authzService.ValidateApplicationDecision(ctx, app, actor.UserID); err != nil {
			return nil, err
		}
	}

	app.Status = status
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applicationRepo.Update(txCtx, app); err != nil {
			return err
		}
		return s.notifyDecision(txCtx, app, status)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromApplication(app)
	return &resp, nil
}

// DeleteApplication withdraws an application. Only the submitting candidate
// and admins can delete one.
func (s *applicationServiceImpl) DeleteApplication(ctx context.Context, actor *authz.Actor, id int64) error {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authzService.ValidateApplicationAccess(ctx, app, actor.UserID); err != nil {
		return err
	}

	if !actor.IsAdmin() {
		if actor.Role != models.RoleCandidate || app.Candidate == nil || app.Candidate.UserID != actor.UserID {
			return authz.ErrPermissionDenied
		}
	}

	return s.applicationRepo.Delete(ctx, id)
}

// notifyDecision tells the candidate about a status decision on their
// application. Every decision call notifies, including repeated ones.
func (s *applicationServiceImpl) notifyDecision(ctx context.Context, app *models.Application, status models.ApplicationStatus) error {
	if app.Candidate == nil {
		return nil
	}

	offerTitle := ""
	if app.Offer != nil {
		offerTitle = app.Offer.Title
	}

	ref := &models.EntityRef{Type: models.RelatedApplication, ID: app.ID}
	switch status {
	case models.ApplicationAccepted:
		message := fmt.Sprintf("Your application to %q was accepted", offerTitle)
		return s.notifier.Notify(ctx, app.Candidate.UserID, models.NotificationApplicationAccepted, "Application accepted", message, ref)
	case models.ApplicationRejected:
		message := fmt.Sprintf("Your application to %q was rejected", offerTitle)
		return s.notifier.Notify(ctx, app.Candidate.UserID, models.NotificationApplicationRejected, "Application rejected", message, ref)
	}
	return nil
}
