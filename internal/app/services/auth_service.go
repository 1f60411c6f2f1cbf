package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/auth"
	"github.com/yassine/stagelink/internal/pkg/validation"
)

type userRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	CreateCandidateProfile(ctx context.Context, profile *models.CandidateProfile) (int64, error)
	CreateCompanyProfile(ctx context.Context, profile *models.CompanyProfile) (int64, error)
}

type tokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetToken(ctx context.Context, token string) (int64, time.Time, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUserTokens(ctx context.Context, userID int64) error
}

type companyFanoutSource interface {
	ListCompanyUserIDsWithActiveOffers(ctx context.Context, field *string) ([]int64, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   userRepository
	tokenRepo  tokenRepository
	offerRepo  companyFanoutSource
	notifier   NotificationService
	tx         TxRunner
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo userRepository,
	tokenRepo tokenRepository,
	offerRepo companyFanoutSource,
	notifier NotificationService,
	tx TxRunner,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		offerRepo:  offerRepo,
		notifier:   notifier,
		tx:         tx,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterCandidate creates a candidate account with its profile. Companies
// with active offers in the candidate's field are notified of the new profile.
func (s *AuthService) RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.ErrInvalidPassword
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleCandidate,
		IsActive: true,
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		userID, err := s.userRepo.CreateUser(txCtx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		profile := &models.CandidateProfile{
			UserID:    userID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     optionalString(req.Phone),
			Field:     optionalString(req.Field),
			School:    optionalString(req.School),
		}
		if _, err := s.userRepo.CreateCandidateProfile(txCtx, profile); err != nil {
			return err
		}

		return s.notifyCompaniesOfNewCandidate(txCtx, profile)
	})
	if err != nil {
		return nil, err
	}

	tokenResp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Candidate registered")
	return &dto.AuthResponse{
		Token: *tokenResp,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role), IsActive: user.IsActive},
	}, nil
}

// RegisterCompany creates a company account with its profile
func (s *AuthService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.ErrInvalidPassword
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleCompany,
		IsActive: true,
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		userID, err := s.userRepo.CreateUser(txCtx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		profile := &models.CompanyProfile{
			UserID:      userID,
			Name:        req.Name,
			Description: optionalString(req.Description),
			Website:     optionalString(req.Website),
			Phone:       optionalString(req.Phone),
			City:        optionalString(req.City),
		}
		_, err = s.userRepo.CreateCompanyProfile(txCtx, profile)
		return err
	})
	if err != nil {
		return nil, err
	}

	tokenResp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Company registered")
	return &dto.AuthResponse{
		Token: *tokenResp,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role), IsActive: user.IsActive},
	}, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	tokenResp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *tokenResp,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Role: string(user.Role), IsActive: user.IsActive},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The used token is invalidated.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiresAt, err := s.tokenRepo.GetToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error getting refresh token: %w", err)
	}

	if time.Now().After(expiresAt) {
		_ = s.tokenRepo.DeleteToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user for token refresh: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.DeleteToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error rotating refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.DeleteToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// notifyCompaniesOfNewCandidate notifies companies with active offers that a
// new candidate matching their field registered. The notification writes share
// the registration transaction.
func (s *AuthService) notifyCompaniesOfNewCandidate(ctx context.Context, profile *models.CandidateProfile) error {
	userIDs, err := s.offerRepo.ListCompanyUserIDsWithActiveOffers(ctx, profile.Field)
	if err != nil {
		return fmt.Errorf("error listing companies for candidate notification: %w", err)
	}

	name := profile.FirstName + " " + profile.LastName
	message := fmt.Sprintf("%s just joined the platform", name)
	if profile.Field != nil && *profile.Field != "" {
		message = fmt.Sprintf("%s just joined the platform, looking for an internship in %s", name, *profile.Field)
	}

	ref := models.EntityRef{Type: models.RelatedCandidate, ID: profile.ID}
	for _, userID := range userIDs {
		if err := s.notifier.NotifyOnce(ctx, userID, models.NotificationNewCandidate, "New candidate available", message, ref); err != nil {
			return err
		}
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
