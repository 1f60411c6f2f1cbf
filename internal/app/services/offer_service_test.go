package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authz "github.com/yassine/stagelink/internal/app/auth"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newOfferServiceForTest() (OfferService, *fakeOfferRepo, *fakeProfiles) {
	offerRepo := newFakeOfferRepo()
	profiles := newFakeProfiles()
	appRepo := newFakeApplicationRepo()
	authzService := authz.NewAuthorizationService(profiles, offerRepo, appRepo)
	return NewOfferService(offerRepo, profiles, authzService), offerRepo, profiles
}

func TestGetOffers_VisibilityScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous only sees available offers", func(t *testing.T) {
		svc, offerRepo, _ := newOfferServiceForTest()
		_, err := svc.GetOffers(ctx, nil, &dto.OfferFilterRequest{})
		require.NoError(t, err)
		require.NotNil(t, offerRepo.lastFilter)
		assert.True(t, offerRepo.lastFilter.OnlyAvailable)
		assert.Nil(t, offerRepo.lastFilter.CompanyID)
	})

	t.Run("candidate only sees available offers", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCandidate(1, 10)
		_, err := svc.GetOffers(ctx, &authz.Actor{UserID: 1, Role: models.RoleCandidate}, &dto.OfferFilterRequest{})
		require.NoError(t, err)
		assert.True(t, offerRepo.lastFilter.OnlyAvailable)
	})

	t.Run("company sees its own offers only", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")
		_, err := svc.GetOffers(ctx, &authz.Actor{UserID: 2, Role: models.RoleCompany}, &dto.OfferFilterRequest{})
		require.NoError(t, err)
		require.NotNil(t, offerRepo.lastFilter.CompanyID)
		assert.Equal(t, int64(20), *offerRepo.lastFilter.CompanyID)
		assert.False(t, offerRepo.lastFilter.OnlyAvailable)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		svc, offerRepo, _ := newOfferServiceForTest()
		_, err := svc.GetOffers(ctx, &authz.Actor{UserID: 3, Role: models.RoleAdmin}, &dto.OfferFilterRequest{})
		require.NoError(t, err)
		assert.False(t, offerRepo.lastFilter.OnlyAvailable)
		assert.Nil(t, offerRepo.lastFilter.CompanyID)
	})

	t.Run("active flag filter is passed through", func(t *testing.T) {
		svc, offerRepo, _ := newOfferServiceForTest()
		inactive := false
		_, err := svc.GetOffers(ctx, &authz.Actor{UserID: 3, Role: models.RoleAdmin}, &dto.OfferFilterRequest{IsActive: &inactive})
		require.NoError(t, err)
		require.NotNil(t, offerRepo.lastFilter.IsActive)
		assert.False(t, *offerRepo.lastFilter.IsActive)
	})
}

func TestGetOfferByID_HidesUnavailableOffers(t *testing.T) {
	ctx := context.Background()
	svc, offerRepo, profiles := newOfferServiceForTest()
	profiles.addCandidate(1, 10)
	offerRepo.offers[5] = &models.Offer{ID: 5, CompanyID: 20, IsActive: false, Capacity: 2, Duration: "3 mois"}

	_, err := svc.GetOfferByID(ctx, &authz.Actor{UserID: 1, Role: models.RoleCandidate}, 5)
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}

func TestCreateOffer(t *testing.T) {
	ctx := context.Background()
	companyActor := &authz.Actor{UserID: 2, Role: models.RoleCompany}
	adminActor := &authz.Actor{UserID: 3, Role: models.RoleAdmin}

	day := func(t time.Time) *string {
		s := t.Format("2006-01-02")
		return &s
	}
	nextMonth := time.Now().AddDate(0, 1, 0)

	baseReq := func() *dto.CreateOfferRequest {
		return &dto.CreateOfferRequest{
			Title:       "Backend intern",
			Description: "Work on the API",
			Field:       "Informatique",
			City:        "Lyon",
			Type:        "ON_SITE",
			Duration:    "3 mois",
			Capacity:    2,
		}
	}

	t.Run("success with default active flag", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		resp, err := svc.CreateOffer(ctx, companyActor, baseReq())
		require.NoError(t, err)
		assert.Equal(t, int64(20), resp.CompanyID)
		assert.True(t, resp.IsActive)
		assert.True(t, resp.IsAvailable)
		assert.Len(t, offerRepo.offers, 1)
	})

	t.Run("non-company user is rejected", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCandidate(1, 10)

		_, err := svc.CreateOffer(ctx, &authz.Actor{UserID: 1, Role: models.RoleCandidate}, baseReq())
		assert.ErrorIs(t, err, authz.ErrNotCompany)
	})

	t.Run("unparseable duration is rejected", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.Duration = "quelques mois"
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duration inconsistent with dates is rejected", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.StartDate = day(nextMonth)
		req.EndDate = day(nextMonth.AddDate(0, 0, 19))
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duration consistent with dates passes", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.StartDate = day(nextMonth)
		req.EndDate = day(nextMonth.AddDate(0, 0, 89))
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.NoError(t, err)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.Deadline = strPtr("15/09/2025")
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("deadline before the start date is rejected", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.StartDate = day(nextMonth)
		req.Deadline = day(time.Now().AddDate(0, 0, 1))
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("past start date is rejected for a company", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.StartDate = strPtr("2020-01-01")
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("past deadline is rejected for a company", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		req.Deadline = day(time.Now().AddDate(0, 0, -1))
		_, err := svc.CreateOffer(ctx, companyActor, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("admin creates for an explicit company", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		companyID := int64(20)
		req.CompanyID = &companyID
		resp, err := svc.CreateOffer(ctx, adminActor, req)
		require.NoError(t, err)
		assert.Equal(t, int64(20), resp.CompanyID)
		assert.Len(t, offerRepo.offers, 1)
	})

	t.Run("admin must name the owning company", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		_, err := svc.CreateOffer(ctx, adminActor, baseReq())
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("admin may backdate an offer", func(t *testing.T) {
		svc, _, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")

		req := baseReq()
		companyID := int64(20)
		req.CompanyID = &companyID
		req.StartDate = strPtr("2020-01-01")
		req.EndDate = strPtr("2020-03-30")
		_, err := svc.CreateOffer(ctx, adminActor, req)
		assert.NoError(t, err)
	})
}

func TestUpdateOffer(t *testing.T) {
	ctx := context.Background()

	updateReq := &dto.UpdateOfferRequest{
		Title:       "Updated title",
		Description: "Updated description",
		Field:       "Informatique",
		City:        "Paris",
		Type:        "REMOTE",
		Duration:    "2 mois",
		Capacity:    1,
	}

	seed := func(offerRepo *fakeOfferRepo) {
		offerRepo.offers[5] = &models.Offer{
			ID: 5, CompanyID: 20, Title: "Old", IsActive: true, Capacity: 2, Duration: "3 mois",
		}
	}

	t.Run("owner can update", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")
		seed(offerRepo)

		resp, err := svc.UpdateOffer(ctx, &authz.Actor{UserID: 2, Role: models.RoleCompany}, 5, updateReq)
		require.NoError(t, err)
		assert.Equal(t, "Updated title", resp.Title)
		assert.Equal(t, "REMOTE", resp.Type)
	})

	t.Run("foreign company gets not found", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")
		profiles.addCompany(4, 40, "Globex")
		seed(offerRepo)

		_, err := svc.UpdateOffer(ctx, &authz.Actor{UserID: 4, Role: models.RoleCompany}, 5, updateReq)
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	})

	t.Run("admin can update any offer", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")
		seed(offerRepo)

		_, err := svc.UpdateOffer(ctx, &authz.Actor{UserID: 3, Role: models.RoleAdmin}, 5, updateReq)
		assert.NoError(t, err)
	})
}

func TestDeleteOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")
		offerRepo.offers[5] = &models.Offer{ID: 5, CompanyID: 20, Capacity: 1, Duration: "1 mois"}

		require.NoError(t, svc.DeleteOffer(ctx, &authz.Actor{UserID: 2, Role: models.RoleCompany}, 5))
		assert.Empty(t, offerRepo.offers)
	})

	t.Run("foreign company gets not found", func(t *testing.T) {
		svc, offerRepo, profiles := newOfferServiceForTest()
		profiles.addCompany(2, 20, "Acme")
		profiles.addCompany(4, 40, "Globex")
		offerRepo.offers[5] = &models.Offer{ID: 5, CompanyID: 20, Capacity: 1, Duration: "1 mois"}

		err := svc.DeleteOffer(ctx, &authz.Actor{UserID: 4, Role: models.RoleCompany}, 5)
		assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
		assert.Len(t, offerRepo.offers, 1)
	})
}

func TestFromOffer_DerivedFields(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	offer := &models.Offer{
		ID: 1, Capacity: 2, PlacesTaken: 2, IsActive: true, Deadline: &deadline,
	}

	resp := dto.FromOffer(offer, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, resp.IsExpired)
	assert.True(t, resp.IsFull)
	assert.False(t, resp.IsAvailable)
}
