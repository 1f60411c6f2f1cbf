package services

import (
	"context"
	"time"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/repositories"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

func timeNowPlusHour() time.Time { return time.Now().Add(time.Hour) }

// fakeTx runs the transactional function directly against the same context.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeOfferRepo struct {
	offers         map[int64]*models.Offer
	nextID         int64
	lastFilter     *repositories.OfferFilter
	fanoutUserIDs  []int64
	fanoutField    *string
	updatedOfferID int64
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: map[int64]*models.Offer{}, nextID: 1}
}

func (f *fakeOfferRepo) GetAll(_ context.Context, filter repositories.OfferFilter) ([]models.Offer, int64, error) {
	f.lastFilter = &filter
	var out []models.Offer
	for _, o := range f.offers {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOfferRepo) GetByID(_ context.Context, id int64) (*models.Offer, error) {
	if o, ok := f.offers[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, apperrors.ErrOfferNotFound
}

func (f *fakeOfferRepo) Create(_ context.Context, offer *models.Offer) (int64, error) {
	id := f.nextID
	f.nextID++
	cp := *offer
	cp.ID = id
	f.offers[id] = &cp
	return id, nil
}

func (f *fakeOfferRepo) Update(_ context.Context, offer *models.Offer) error {
	if _, ok := f.offers[offer.ID]; !ok {
		return apperrors.ErrOfferNotFound
	}
	cp := *offer
	f.offers[offer.ID] = &cp
	f.updatedOfferID = offer.ID
	return nil
}

func (f *fakeOfferRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.offers[id]; !ok {
		return apperrors.ErrOfferNotFound
	}
	delete(f.offers, id)
	return nil
}

func (f *fakeOfferRepo) ListCompanyUserIDsWithActiveOffers(_ context.Context, field *string) ([]int64, error) {
	f.fanoutField = field
	return f.fanoutUserIDs, nil
}

type fakeProfiles struct {
	users            map[int64]*models.User
	candidatesByUser map[int64]*models.CandidateProfile
	companiesByUser  map[int64]*models.CompanyProfile
	companiesByID    map[int64]*models.CompanyProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		users:            map[int64]*models.User{},
		candidatesByUser: map[int64]*models.CandidateProfile{},
		companiesByUser:  map[int64]*models.CompanyProfile{},
		companiesByID:    map[int64]*models.CompanyProfile{},
	}
}

func (f *fakeProfiles) addCandidate(userID, profileID int64) *models.CandidateProfile {
	f.users[userID] = &models.User{ID: userID, Role: models.RoleCandidate, IsActive: true}
	p := &models.CandidateProfile{ID: profileID, UserID: userID, FirstName: "Test", LastName: "Candidate"}
	f.candidatesByUser[userID] = p
	return p
}

func (f *fakeProfiles) addCompany(userID, profileID int64, name string) *models.CompanyProfile {
	f.users[userID] = &models.User{ID: userID, Role: models.RoleCompany, IsActive: true}
	p := &models.CompanyProfile{ID: profileID, UserID: userID, Name: name}
	f.companiesByUser[userID] = p
	f.companiesByID[profileID] = p
	return p
}

func (f *fakeProfiles) addAdmin(userID int64) {
	f.users[userID] = &models.User{ID: userID, Role: models.RoleAdmin, IsActive: true}
}

func (f *fakeProfiles) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeProfiles) GetCandidateByUserID(_ context.Context, userID int64) (*models.CandidateProfile, error) {
	if p, ok := f.candidatesByUser[userID]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfiles) GetCompanyByUserID(_ context.Context, userID int64) (*models.CompanyProfile, error) {
	if p, ok := f.companiesByUser[userID]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfiles) GetCompanyByID(_ context.Context, id int64) (*models.CompanyProfile, error) {
	if p, ok := f.companiesByID[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

type fakeApplicationRepo struct {
	apps       map[int64]*models.Application
	nextID     int64
	lastFilter *repositories.ApplicationFilter
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[int64]*models.Application{}, nextID: 1}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *models.Application) (int64, error) {
	for _, existing := range f.apps {
		if existing.OfferID == app.OfferID && existing.CandidateID == app.CandidateID {
			return 0, apperrors.ErrDuplicateApplication
		}
	}
	id := f.nextID
	f.nextID++
	cp := *app
	cp.ID = id
	f.apps[id] = &cp
	return id, nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	if a, ok := f.apps[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) GetAll(_ context.Context, filter repositories.ApplicationFilter) ([]models.Application, int64, error) {
	f.lastFilter = &filter
	var out []models.Application
	for _, a := range f.apps {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeApplicationRepo) Update(_ context.Context, app *models.Application) error {
	if _, ok := f.apps[app.ID]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeApplicationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.apps[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(f.apps, id)
	return nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        int64
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) (int64, error) {
	f.nextID++
	cp := *n
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.notifications = append(f.notifications, cp)
	return cp.ID, nil
}

func (f *fakeNotificationRepo) GetByUser(_ context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var count int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) HasRecentDuplicate(_ context.Context, userID int64, nType models.NotificationType, relatedID int64, window time.Duration) (bool, error) {
	cutoff := time.Now().Add(-window)
	for _, n := range f.notifications {
		if n.UserID == userID && n.Type == nType && n.RelatedID != nil && *n.RelatedID == relatedID && n.CreatedAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) byUser(userID int64) []models.Notification {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	*fakeProfiles
	nextUserID    int64
	nextProfileID int64
	emails        map[string]int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		fakeProfiles:  newFakeProfiles(),
		nextUserID:    1,
		nextProfileID: 1,
		emails:        map[string]int64{},
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if _, exists := f.emails[user.Email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	id := f.nextUserID
	f.nextUserID++
	cp := *user
	cp.ID = id
	f.users[id] = &cp
	f.emails[user.Email] = id
	return id, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if id, ok := f.emails[email]; ok {
		return f.users[id], nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	if u, ok := f.users[userID]; ok {
		now := time.Now()
		u.LastLoginAt = &now
		return nil
	}
	return apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) CreateCandidateProfile(_ context.Context, profile *models.CandidateProfile) (int64, error) {
	id := f.nextProfileID
	f.nextProfileID++
	cp := *profile
	cp.ID = id
	f.candidatesByUser[profile.UserID] = &cp
	return id, nil
}

func (f *fakeUserRepo) CreateCompanyProfile(_ context.Context, profile *models.CompanyProfile) (int64, error) {
	id := f.nextProfileID
	f.nextProfileID++
	cp := *profile
	cp.ID = id
	f.companiesByUser[profile.UserID] = &cp
	f.companiesByID[id] = &cp
	return id, nil
}

type fakeTokenRepo struct {
	tokens map[string]struct {
		userID    int64
		expiresAt time.Time
	}
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]struct {
		userID    int64
		expiresAt time.Time
	}{}}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = struct {
		userID    int64
		expiresAt time.Time
	}{userID, expiresAt}
	return nil
}

func (f *fakeTokenRepo) GetToken(_ context.Context, token string) (int64, time.Time, error) {
	if entry, ok := f.tokens[token]; ok {
		return entry.userID, entry.expiresAt, nil
	}
	return 0, time.Time{}, apperrors.ErrTokenNotFound
}

func (f *fakeTokenRepo) DeleteToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenRepo) DeleteUserTokens(_ context.Context, userID int64) error {
	for token, entry := range f.tokens {
		if entry.userID == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}
