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
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// UserRepository handles database operations for users and their profiles
type UserRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a new user and returns its ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "role", "is_active", "created_at", "updated_at").
		Values(user.Email, user.Password, user.Role, user.IsActive, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getUser(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "role", "is_active", "created_at", "updated_at", "last_login_at").
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return &user, nil
}

// UpdateLastLogin records the user's last login timestamp
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	_, err = db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// SetUserActive toggles the active flag of a user account
func (r *UserRepository) SetUserActive(ctx context.Context, userID int64, active bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_active", active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set user active query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user active flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// CreateCandidateProfile inserts a candidate profile for a user
func (r *UserRepository) CreateCandidateProfile(ctx context.Context, profile *models.CandidateProfile) (int64, error) {
	sql, args, err := r.sb.Insert("candidate_profiles").
		Columns("user_id", "first_name", "last_name", "phone", "field", "school", "bio", "birth_date", "created_at", "updated_at").
		Values(profile.UserID, profile.FirstName, profile.LastName, profile.Phone, profile.Field, profile.School, profile.Bio, profile.BirthDate, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create candidate profile query: %w", err)
	}

	var id int64
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error creating candidate profile: %w", err)
	}
	return id, nil
}

// CreateCompanyProfile inserts a company profile for a user
func (r *UserRepository) CreateCompanyProfile(ctx context.Context, profile *models.CompanyProfile) (int64, error) {
	sql, args, err := r.sb.Insert("company_profiles").
		Columns("user_id", "name", "description", "website", "phone", "city", "created_at", "updated_at").
		Values(profile.UserID, profile.Name, profile.Description, profile.Website, profile.Phone, profile.City, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create company profile query: %w", err)
	}

	var id int64
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error creating company profile: %w", err)
	}
	return id, nil
}

// GetCandidateByUserID retrieves a candidate profile by the owning user ID
func (r *UserRepository) GetCandidateByUserID(ctx context.Context, userID int64) (*models.CandidateProfile, error) {
	return r.getCandidate(ctx, squirrel.Eq{"cp.user_id": userID})
}

// GetCandidateByID retrieves a candidate profile by its own ID
func (r *UserRepository) GetCandidateByID(ctx context.Context, id int64) (*models.CandidateProfile, error) {
	return r.getCandidate(ctx, squirrel.Eq{"cp.id": id})
}

func (r *UserRepository) getCandidate(ctx context.Context, pred squirrel.Eq) (*models.CandidateProfile, error) {
	sql, args, err := r.sb.Select(
		"cp.id", "cp.user_id", "cp.first_name", "cp.last_name", "cp.phone", "cp.field",
		"cp.school", "cp.bio", "cp.resume_path", "cp.birth_date", "cp.created_at", "cp.updated_at",
		"u.email").
		From("candidate_profiles cp").
		Join("users u ON u.id = cp.user_id").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get candidate query: %w", err)
	}

	var p models.CandidateProfile
	var email string
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.Field,
		&p.School, &p.Bio, &p.ResumePath, &p.BirthDate, &p.CreatedAt, &p.UpdatedAt,
		&email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting candidate profile: %w", err)
	}
	p.User = &models.User{ID: p.UserID, Email: email}
	return &p, nil
}

// GetCompanyByUserID retrieves a company profile by the owning user ID
func (r *UserRepository) GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error) {
	return r.getCompany(ctx, squirrel.Eq{"cp.user_id": userID})
}

// GetCompanyByID retrieves a company profile by its own ID
func (r *UserRepository) GetCompanyByID(ctx context.Context, id int64) (*models.CompanyProfile, error) {
	return r.getCompany(ctx, squirrel.Eq{"cp.id": id})
}

func (r *UserRepository) getCompany(ctx context.Context, pred squirrel.Eq) (*models.CompanyProfile, error) {
	sql, args, err := r.sb.Select(
		"cp.id", "cp.user_id", "cp.name", "cp.description", "cp.website", "cp.phone",
		"cp.city", "cp.logo_path", "cp.created_at", "cp.updated_at",
		"u.email").
		From("company_profiles cp").
		Join("users u ON u.id = cp.user_id").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	var p models.CompanyProfile
	var email string
	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Website, &p.Phone,
		&p.City, &p.LogoPath, &p.CreatedAt, &p.UpdatedAt,
		&email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting company profile: %w", err)
	}
	p.User = &models.User{ID: p.UserID, Email: email}
	return &p, nil
}

// UpdateCandidateProfile updates the mutable fields of a candidate profile
func (r *UserRepository) UpdateCandidateProfile(ctx context.Context, profile *models.CandidateProfile) error {
	sql, args, err := r.sb.Update("candidate_profiles").
		Set("first_name", profile.FirstName).
		Set("last_name", profile.LastName).
		Set("phone", profile.Phone).
		Set("field", profile.Field).
		Set("school", profile.School).
		Set("bio", profile.Bio).
		Set("birth_date", profile.BirthDate).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update candidate profile query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating candidate profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// UpdateCompanyProfile updates the mutable fields of a company profile
func (r *UserRepository) UpdateCompanyProfile(ctx context.Context, profile *models.CompanyProfile) error {
	sql, args, err := r.sb.Update("company_profiles").
		Set("name", profile.Name).
		Set("description", profile.Description).
		Set("website", profile.Website).
		Set("phone", profile.Phone).
		Set("city", profile.City).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company profile query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating company profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// UpdateCandidateResumePath stores the resume file path on the candidate profile
func (r *UserRepository) UpdateCandidateResumePath(ctx context.Context, candidateID int64, resumePath *string) error {
	sql, args, err := r.sb.Update("candidate_profiles").
		Set("resume_path", resumePath).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": candidateID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update resume path query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating resume path: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// ListUsers retrieves users with optional role filtering and pagination
func (r *UserRepository) ListUsers(ctx context.Context, role *models.Role, page, pageSize int) ([]models.User, int64, error) {
	base := r.sb.Select("id", "email", "role", "is_active", "created_at", "updated_at", "last_login_at").
		From("users").
		OrderBy("created_at DESC")
	if role != nil {
		base = base.Where(squirrel.Eq{"role": *role})
	}

	offset := (page - 1) * pageSize
	sql, args, err := base.Column("COUNT(*) OVER()").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := db.QuerierFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, total, nil
}

// CountByEmail reports whether a user already exists with the given email
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build count by email query: %w", err)
	}

	var count int64
	if err := db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error counting users by email: %w", err)
	}
	return count > 0, nil
}
