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
)

// acceptedCountExpr counts accepted applications for the offer row being scanned.
const acceptedCountExpr = "(SELECT COUNT(*) FROM applications a WHERE a.offer_id = o.id AND a.status = 'ACCEPTED')"

// OfferFilter describes the filtering options for listing offers
type OfferFilter struct {
	Search        string
	City          string
	Field         string
	Type          string
	IsActive      *bool  // Filter on the stored active flag
	CompanyID     *int64 // Restrict to a single company's offers
	OnlyAvailable bool   // Restrict to offers currently accepting applications
	Page          int
	PageSize      int
}

// OfferRepository handles database operations for internship offers
type OfferRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *OfferRepository) selectOffers() squirrel.SelectBuilder {
	return r.sb.Select(
		"o.id", "o.company_id", "o.title", "o.description", "o.field", "o.city",
		"o.type", "o.duration", "o.capacity", "o.compensation",
		"o.start_date", "o.end_date", "o.deadline", "o.is_active",
		"o.created_at", "o.updated_at",
		"c.name",
		acceptedCountExpr+" AS places_taken").
		From("offers o").
		Join("company_profiles c ON c.id = o.company_id")
}

func scanOffer(row pgx.Row, extra ...any) (*models.Offer, error) {
	var o models.Offer
	var companyName string
	dest := []any{
		&o.ID, &o.CompanyID, &o.Title, &o.Description, &o.Field, &o.City,
		&o.Type, &o.Duration, &o.Capacity, &o.Compensation,
		&o.StartDate, &o.EndDate, &o.Deadline, &o.IsActive,
		&o.CreatedAt, &o.UpdatedAt,
		&companyName,
		&o.PlacesTaken,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	o.Company = &models.CompanyProfile{ID: o.CompanyID, Name: companyName}
	return &o, nil
}

// GetAll retrieves offers matching the filter, with total count for pagination
func (r *OfferRepository) GetAll(ctx context.Context, filter OfferFilter) ([]models.Offer, int64, error) {
	query := r.selectOffers().OrderBy("o.created_at DESC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"o.title": pattern},
			squirrel.ILike{"o.description": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"o.city": filter.City})
	}
	if filter.Field != "" {
		query = query.Where(squirrel.ILike{"o.field": filter.Field})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"o.type": filter.Type})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"o.is_active": *filter.IsActive})
	}
	if filter.CompanyID != nil {
		query = query.Where(squirrel.Eq{"o.company_id": *filter.CompanyID})
	}
	if filter.OnlyAvailable {
		query = query.Where("o.is_active = TRUE").
			Where("(o.deadline IS NULL OR o.deadline >= CURRENT_DATE)").
			Where(acceptedCountExpr + " < o.capacity")
	}

	offset := (filter.Page - 1) * filter.PageSize
	sql, args, err := query.Column("COUNT(*) OVER()").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list offers query: %w", err)
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	var total int64
	for rows.Next() {
		offer, err := scanOffer(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning offer row: %w", err)
		}
		offers = append(offers, *offer)
	}
	return offers, total, nil
}

// GetByID retrieves a single offer with its accepted application count
func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*models.Offer, error) {
	sql, args, err := r.selectOffers().
		Where(squirrel.Eq{"o.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get offer query: %w", err)
	}

	offer, err := scanOffer(db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, fmt.Errorf("error getting offer: %w", err)
	}
	return offer, nil
}

// Create inserts a new offer and returns its ID
func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) (int64, error) {
	sql, args, err := r.sb.Insert("offers").
		Columns("company_id", "title", "description", "field", "city", "type",
			"duration", "capacity", "compensation", "start_date", "end_date",
			"deadline", "is_active", "created_at", "updated_at").
		Values(offer.CompanyID, offer.Title, offer.Description, offer.Field, offer.City, offer.Type,
			offer.Duration, offer.Capacity, offer.Compensation, offer.StartDate, offer.EndDate,
			offer.Deadline, offer.IsActive, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create offer query: %w", err)
	}

	var id int64
	if err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating offer: %w", err)
	}
	return id, nil
}

// Update updates an existing offer
func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	sql, args, err := r.sb.Update("offers").
		Set("title", offer.Title).
		Set("description", offer.Description).
		Set("field", offer.Field).
		Set("city", offer.City).
		Set("type", offer.Type).
		Set("duration", offer.Duration).
		Set("capacity", offer.Capacity).
		Set("compensation", offer.Compensation).
		Set("start_date", offer.StartDate).
		Set("end_date", offer.EndDate).
		Set("deadline", offer.Deadline).
		Set("is_active", offer.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": offer.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update offer query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOfferNotFound
	}
	return nil
}

// Delete removes an offer. Applications referencing it are removed by the
// ON DELETE CASCADE constraint.
func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete offer query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOfferNotFound
	}
	return nil
}

// ListCompanyUserIDsWithActiveOffers returns the user IDs of companies that
// currently have at least one active offer, optionally narrowed to a field.
func (r *OfferRepository) ListCompanyUserIDsWithActiveOffers(ctx context.Context, field *string) ([]int64, error) {
	query := r.sb.Select("DISTINCT c.user_id").
		From("offers o").
		Join("company_profiles c ON c.id = o.company_id").
		Where("o.is_active = TRUE")
	if field != nil && *field != "" {
		query = query.Where(squirrel.ILike{"o.field": *field})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build company user ids query: %w", err)
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing company user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning company user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
