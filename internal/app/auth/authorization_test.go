package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

type fakeUserStore struct {
	users      map[int64]*models.User
	candidates map[int64]*models.CandidateProfile
	companies  map[int64]*models.CompanyProfile
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetCandidateByUserID(_ context.Context, userID int64) (*models.CandidateProfile, error) {
	if p, ok := f.candidates[userID]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeUserStore) GetCompanyByUserID(_ context.Context, userID int64) (*models.CompanyProfile, error) {
	if p, ok := f.companies[userID]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

type fakeOfferStore struct {
	offers map[int64]*models.Offer
}

func (f *fakeOfferStore) GetByID(_ context.Context, id int64) (*models.Offer, error) {
	if o, ok := f.offers[id]; ok {
		return o, nil
	}
	return nil, apperrors.ErrOfferNotFound
}

type fakeApplicationStore struct {
	apps map[int64]*models.Application
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	if a, ok := f.apps[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrApplicationNotFound
}

func futureDate() *time.Time {
	t := time.Now().UTC().AddDate(0, 1, 0)
	return &t
}

func pastDate() *time.Time {
	t := time.Now().UTC().AddDate(0, -1, 0)
	return &t
}

func newTestService() (*AuthorizationService, *fakeUserStore, *fakeOfferStore, *fakeApplicationStore) {
	users := &fakeUserStore{
		users: map[int64]*models.User{
			1: {ID: 1, Role: models.RoleCandidate},
			2: {ID: 2, Role: models.RoleCompany},
			3: {ID: 3, Role: models.RoleAdmin},
			4: {ID: 4, Role: models.RoleCompany},
		},
		candidates: map[int64]*models.CandidateProfile{
			1: {ID: 10, UserID: 1},
		},
		companies: map[int64]*models.CompanyProfile{
			2: {ID: 20, UserID: 2},
			4: {ID: 40, UserID: 4},
		},
	}
	offers := &fakeOfferStore{offers: map[int64]*models.Offer{}}
	apps := &fakeApplicationStore{apps: map[int64]*models.Application{}}
	return NewAuthorizationService(users, offers, apps), users, offers, apps
}

func TestCanViewOffer(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	available := &models.Offer{ID: 100, CompanyID: 20, IsActive: true, Capacity: 2, Deadline: futureDate()}
	inactive := &models.Offer{ID: 101, CompanyID: 20, IsActive: false, Capacity: 2}
	expired := &models.Offer{ID: 102, CompanyID: 20, IsActive: true, Capacity: 2, Deadline: pastDate()}
	full := &models.Offer{ID: 103, CompanyID: 20, IsActive: true, Capacity: 1, PlacesTaken: 1}

	t.Run("anonymous sees only available offers", func(t *testing.T) {
		for _, tc := range []struct {
			offer *models.Offer
			want  bool
		}{
			{available, true}, {inactive, false}, {expired, false}, {full, false},
		} {
			ok, err := svc.CanViewOffer(ctx, nil, tc.offer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok, "offer %d", tc.offer.ID)
		}
	})

	t.Run("candidate sees only available offers", func(t *testing.T) {
		actor := &Actor{UserID: 1, Role: models.RoleCandidate}
		ok, err := svc.CanViewOffer(ctx, actor, available)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.CanViewOffer(ctx, actor, inactive)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("company sees its own unavailable offers", func(t *testing.T) {
		owner := &Actor{UserID: 2, Role: models.RoleCompany}
		ok, err := svc.CanViewOffer(ctx, owner, inactive)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("company cannot see foreign unavailable offers", func(t *testing.T) {
		other := &Actor{UserID: 4, Role: models.RoleCompany}
		ok, err := svc.CanViewOffer(ctx, other, inactive)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.CanViewOffer(ctx, other, available)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		admin := &Actor{UserID: 3, Role: models.RoleAdmin}
		for _, offer := range []*models.Offer{available, inactive, expired, full} {
			ok, err := svc.CanViewOffer(ctx, admin, offer)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})
}

func TestValidateOfferView_HidesExistence(t *testing.T) {
	svc, _, _, _ := newTestService()
	inactive := &models.Offer{ID: 101, CompanyID: 20, IsActive: false, Capacity: 2}

	err := svc.ValidateOfferView(context.Background(), nil, inactive)
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}

func TestValidateOfferOwnership(t *testing.T) {
	svc, _, offers, _ := newTestService()
	offers.offers[100] = &models.Offer{ID: 100, CompanyID: 20, IsActive: true, Capacity: 2}

	t.Run("owner passes", func(t *testing.T) {
		assert.NoError(t, svc.ValidateOfferOwnership(context.Background(), 100, 2))
	})

	t.Run("foreign offer reported as not found", func(t *testing.T) {
		err := svc.ValidateOfferOwnership(context.Background(), 100, 4)
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})

	t.Run("user without company profile reported as not found", func(t *testing.T) {
		err := svc.ValidateOfferOwnership(context.Background(), 100, 1)
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})
}

func TestCanViewApplication(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	app := &models.Application{
		ID:          200,
		OfferID:     100,
		CandidateID: 10,
		Offer:       &models.Offer{ID: 100, CompanyID: 20},
	}

	t.Run("submitting candidate", func(t *testing.T) {
		ok, err := svc.CanViewApplication(ctx, app, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("owning company", func(t *testing.T) {
		ok, err := svc.CanViewApplication(ctx, app, 2)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("foreign company", func(t *testing.T) {
		ok, err := svc.CanViewApplication(ctx, app, 4)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admin", func(t *testing.T) {
		ok, err := svc.CanViewApplication(ctx, app, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestValidateApplicationDecision(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	app := &models.Application{
		ID:    200,
		Offer: &models.Offer{ID: 100, CompanyID: 20},
	}

	t.Run("owning company may decide", func(t *testing.T) {
		assert.NoError(t, svc.ValidateApplicationDecision(ctx, app, 2))
	})

	t.Run("foreign company denied", func(t *testing.T) {
		err := svc.ValidateApplicationDecision(ctx, app, 4)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("candidate denied", func(t *testing.T) {
		err := svc.ValidateApplicationDecision(ctx, app, 1)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
