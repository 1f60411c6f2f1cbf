package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

type fakeAdminUserRepo struct {
	users      []models.User
	lastRole   *models.Role
	activeByID map[int64]bool
}

func (f *fakeAdminUserRepo) ListUsers(_ context.Context, role *models.Role, page, pageSize int) ([]models.User, int64, error) {
	f.lastRole = role
	var out []models.User
	for _, u := range f.users {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAdminUserRepo) SetUserActive(_ context.Context, userID int64, active bool) error {
	for _, u := range f.users {
		if u.ID == userID {
			if f.activeByID == nil {
				f.activeByID = map[int64]bool{}
			}
			f.activeByID[userID] = active
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func TestAdminGetUsers(t *testing.T) {
	ctx := context.Background()
	userRepo := &fakeAdminUserRepo{users: []models.User{
		{ID: 1, Email: "c@example.com", Role: models.RoleCandidate, IsActive: true},
		{ID: 2, Email: "e@example.com", Role: models.RoleCompany, IsActive: true},
	}}
	svc := NewAdminService(userRepo, newFakeTokenRepo())

	t.Run("unfiltered", func(t *testing.T) {
		resp, err := svc.GetUsers(ctx, "", 1, 10)
		require.NoError(t, err)
		assert.Len(t, resp.Users, 2)
		assert.Nil(t, userRepo.lastRole)
	})

	t.Run("filtered by role", func(t *testing.T) {
		resp, err := svc.GetUsers(ctx, "COMPANY", 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Users, 1)
		assert.Equal(t, "e@example.com", resp.Users[0].Email)
	})
}

func TestAdminSetUserActive(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivation revokes refresh tokens", func(t *testing.T) {
		userRepo := &fakeAdminUserRepo{users: []models.User{{ID: 1, Role: models.RoleCandidate}}}
		tokenRepo := newFakeTokenRepo()
		require.NoError(t, tokenRepo.CreateToken(ctx, "tok", 1, timeNowPlusHour()))
		svc := NewAdminService(userRepo, tokenRepo)

		require.NoError(t, svc.SetUserActive(ctx, 1, false))
		assert.False(t, userRepo.activeByID[1])
		assert.Empty(t, tokenRepo.tokens)
	})

	t.Run("reactivation keeps tokens", func(t *testing.T) {
		userRepo := &fakeAdminUserRepo{users: []models.User{{ID: 1, Role: models.RoleCandidate}}}
		tokenRepo := newFakeTokenRepo()
		require.NoError(t, tokenRepo.CreateToken(ctx, "tok", 1, timeNowPlusHour()))
		svc := NewAdminService(userRepo, tokenRepo)

		require.NoError(t, svc.SetUserActive(ctx, 1, true))
		assert.True(t, userRepo.activeByID[1])
		assert.Len(t, tokenRepo.tokens, 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminUserRepo{}, newFakeTokenRepo())
		err := svc.SetUserActive(ctx, 99, false)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
