package services

import (
	"context"
	"fmt"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/helpers"
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// AdminService defines the interface for administrative operations
type AdminService interface {
	GetUsers(ctx context.Context, role string, page, pageSize int) (*dto.UserListResponse, error)
	SetUserActive(ctx context.Context, userID int64, active bool) error
}

type adminUserRepository interface {
	ListUsers(ctx context.Context, role *models.Role, page, pageSize int) ([]models.User, int64, error)
	SetUserActive(ctx context.Context, userID int64, active bool) error
}

type tokenRevoker interface {
	DeleteUserTokens(ctx context.Context, userID int64) error
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	userRepo  adminUserRepository
	tokenRepo tokenRevoker
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo adminUserRepository, tokenRepo tokenRevoker) AdminService {
	return &adminServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// GetUsers lists platform users, optionally filtered by role
func (s *adminServiceImpl) GetUsers(ctx context.Context, role string, page, pageSize int) (*dto.UserListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	var roleFilter *models.Role
	if role != "" {
		r := models.Role(role)
		roleFilter = &r
	}

	users, total, err := s.userRepo.ListUsers(ctx, roleFilter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			ID:       u.ID,
			Email:    u.Email,
			Role:     string(u.Role),
			IsActive: u.IsActive,
		})
	}

	return &dto.UserListResponse{
		Users:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// SetUserActive enables or disables a user account. Disabling also revokes
// the user's refresh tokens, ending their sessions.
func (s *adminServiceImpl) SetUserActive(ctx context.Context, userID int64, active bool) error {
	if err := s.userRepo.SetUserActive(ctx, userID, active); err != nil {
		return err
	}

	if !active {
		if err := s.tokenRepo.DeleteUserTokens(ctx, userID); err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens for disabled user")
		}
	}
	return nil
}
