package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/auth"
)

type authFixture struct {
	svc       *AuthService
	userRepo  *fakeUserRepo
	tokenRepo *fakeTokenRepo
	offerRepo *fakeOfferRepo
	notifRepo *fakeNotificationRepo
	tx        *fakeTx
}

func newAuthFixture() *authFixture {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	offerRepo := newFakeOfferRepo()
	notifRepo := &fakeNotificationRepo{}
	tx := &fakeTx{}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "stagelink.test",
	})

	svc := NewAuthService(userRepo, tokenRepo, offerRepo, NewNotificationService(notifRepo), tx, jwtService, zerolog.Nop())
	return &authFixture{
		svc: svc, userRepo: userRepo, tokenRepo: tokenRepo,
		offerRepo: offerRepo, notifRepo: notifRepo, tx: tx,
	}
}

func TestRegisterCandidate(t *testing.T) {
	ctx := context.Background()

	req := func() *dto.RegisterCandidateRequest {
		return &dto.RegisterCandidateRequest{
			Email:     "marie.dupont@example.com",
			Password:  "Secret123!",
			FirstName: "Marie",
			LastName:  "Dupont",
			Field:     "Informatique",
		}
	}

	t.Run("success issues tokens and notifies matching companies", func(t *testing.T) {
		f := newAuthFixture()
		f.offerRepo.fanoutUserIDs = []int64{2, 4}

		resp, err := f.svc.RegisterCandidate(ctx, req())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
		assert.Equal(t, 1, f.tx.calls)

		require.NotNil(t, f.offerRepo.fanoutField)
		assert.Equal(t, "Informatique", *f.offerRepo.fanoutField)

		require.Len(t, f.notifRepo.byUser(2), 1)
		require.Len(t, f.notifRepo.byUser(4), 1)
		assert.Equal(t, models.NotificationNewCandidate, f.notifRepo.byUser(2)[0].Type)
		require.NotNil(t, f.notifRepo.byUser(2)[0].RelatedID)
		assert.Equal(t, models.RelatedCandidate, *f.notifRepo.byUser(2)[0].RelatedType)
	})

	t.Run("no fanout when no company matches", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.RegisterCandidate(ctx, req())
		require.NoError(t, err)
		assert.Empty(t, f.notifRepo.notifications)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		f := newAuthFixture()
		r := req()
		r.Email = "not-an-email"
		_, err := f.svc.RegisterCandidate(ctx, r)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
	})

	t.Run("short password rejected", func(t *testing.T) {
		f := newAuthFixture()
		r := req()
		r.Password = "short"
		_, err := f.svc.RegisterCandidate(ctx, r)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.RegisterCandidate(ctx, req())
		require.NoError(t, err)

		_, err = f.svc.RegisterCandidate(ctx, req())
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestRegisterCompany(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	resp, err := f.svc.RegisterCompany(ctx, &dto.RegisterCompanyRequest{
		Email:    "contact@acme.com",
		Password: "Secret123!",
		Name:     "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleCompany), resp.User.(dto.UserResponse).Role)
	assert.Empty(t, f.notifRepo.notifications)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(f *authFixture) {
		_, err := f.svc.RegisterCandidate(ctx, &dto.RegisterCandidateRequest{
			Email:     "marie.dupont@example.com",
			Password:  "Secret123!",
			FirstName: "Marie",
			LastName:  "Dupont",
		})
		require.NoError(t, err)
	}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture()
		register(f)

		resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "marie.dupont@example.com", Password: "Secret123!"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		register(f)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "marie.dupont@example.com", Password: "wrongpass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Secret123!"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newAuthFixture()
		register(f)
		f.userRepo.users[1].IsActive = false

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "marie.dupont@example.com", Password: "Secret123!"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	register := func(f *authFixture) string {
		resp, err := f.svc.RegisterCandidate(ctx, &dto.RegisterCandidateRequest{
			Email:     "marie.dupont@example.com",
			Password:  "Secret123!",
			FirstName: "Marie",
			LastName:  "Dupont",
		})
		require.NoError(t, err)
		return resp.Token.RefreshToken
	}

	t.Run("rotation invalidates the used token", func(t *testing.T) {
		f := newAuthFixture()
		old := register(f)

		fresh, err := f.svc.RefreshToken(ctx, old)
		require.NoError(t, err)
		assert.NotEqual(t, old, fresh.RefreshToken)

		// The consumed token no longer works.
		_, err = f.svc.RefreshToken(ctx, old)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.RefreshToken(ctx, "does-not-exist")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("expired token is removed", func(t *testing.T) {
		f := newAuthFixture()
		token := register(f)
		entry := f.tokenRepo.tokens[token]
		entry.expiresAt = time.Now().Add(-time.Minute)
		f.tokenRepo.tokens[token] = entry

		_, err := f.svc.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

		_, _, err = f.tokenRepo.GetToken(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})

	t.Run("disabled account cannot refresh", func(t *testing.T) {
		f := newAuthFixture()
		token := register(f)
		f.userRepo.users[1].IsActive = false

		_, err := f.svc.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	resp, err := f.svc.RegisterCandidate(ctx, &dto.RegisterCandidateRequest{
		Email:     "marie.dupont@example.com",
		Password:  "Secret123!",
		FirstName: "Marie",
		LastName:  "Dupont",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, resp.Token.RefreshToken))
	_, err = f.svc.RefreshToken(ctx, resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
