package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/db"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/dberrors"
)

// ApplicationFilter describes the filtering options for listing applications
type ApplicationFilter struct {
	CandidateID *int64 // Applications submitted by a candidate
	CompanyID   *int64 // Applications received on a company's offers
	OfferID     *int64
	Status      *models.ApplicationStatus
	Page        int
	PageSize    int
}

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ApplicationRepository) selectApplications() squirrel.SelectBuilder {
	return r.sb.Select(
		"ap.id", "ap.offer_id", "ap.candidate_id", "ap.status", "ap.message",
		"ap.created_at", "ap.updated_at",
		"o.title", "o.company_id", "o.city", "o.field",
		"c.name",
		"cd.first_name", "cd.last_name", "cd.user_id").
		From("applications ap").
		Join("offers o ON o.id = ap.offer_id").
		Join("company_profiles c ON c.id = o.company_id").
		Join("candidate_profiles cd ON cd.id = ap.candidate_id")
}

func scanApplication(row pgx.Row, extra ...any) (*models.Application, error) {
	var ap models.Application
	var offerTitle, offerCity, offerField, companyName, firstName, lastName string
	var companyID, candidateUserID int64
	dest := []any{
		&ap.ID, &ap.OfferID, &ap.CandidateID, &ap.Status, &ap.Message,
		&ap.CreatedAt, &ap.UpdatedAt,
		&offerTitle, &companyID, &offerCity, &offerField,
		&companyName,
		&firstName, &lastName, &candidateUserID,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	ap.Offer = &models.Offer{
		ID:        ap.OfferID,
		Title:     offerTitle,
		CompanyID: companyID,
		City:      offerCity,
		Field:     offerField,
		Company:   &models.CompanyProfile{ID: companyID, Name: companyName},
	}
	ap.Candidate = &models.CandidateProfile{
		ID:        ap.CandidateID,
		UserID:    candidateUserID,
		FirstName: firstName,
		LastName:  lastName,
	}
	return &ap, nil
}

// Create inserts a new application and returns its ID.
// A candidate can only apply once per offer.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	sql, args, err := r.sb.Insert("applications").
		Columns("offer_id", "candidate_id", "status", "message", "created_at", "updated_at").
		Values(app.OfferID, app.CandidateID, app.Status, app.Message, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_offer_id_candidate_id_key") {
			return 0, apperrors.ErrDuplicateApplication
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrOfferNotFound
		}
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return id, nil
}

// GetByID retrieves a single application with its offer and candidate
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.selectApplications().
		Where(squirrel.Eq{"ap.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return app, nil
}

// GetAll retrieves applications matching the filter, with total count for pagination
func (r *ApplicationRepository) GetAll(ctx context.Context, filter ApplicationFilter) ([]models.Application, int64, error) {
	query := r.selectApplications().OrderBy("ap.created_at DESC")

	if filter.CandidateID != nil {
		query = query.Where(squirrel.Eq{"ap.candidate_id": *filter.CandidateID})
	}
	if filter.CompanyID != nil {
		query = query.Where(squirrel.Eq{"o.company_id": *filter.CompanyID})
	}
	if filter.OfferID != nil {
		query = query.Where(squirrel.Eq{"ap.offer_id": *filter.OfferID})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"ap.status": *filter.Status})
	}

	offset := (filter.Page - 1) * filter.PageSize
	sql, args, err := query.Column("COUNT(*) OVER()").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	var total int64
	for rows.Next() {
		app, err := scanApplication(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, total, nil
}

// Update updates the status and message of an application
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", app.Status).
		Set("message", app.Message).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": app.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
