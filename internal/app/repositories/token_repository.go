package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yassine/stagelink/internal/db"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/dberrors"
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken persists a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expires_at", "created_at").
		Values(token, userID, expiresAt, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// GetToken retrieves the owner and expiry of a refresh token
func (r *TokenRepository) GetToken(ctx context.Context, token string) (userID int64, expiresAt time.Time, err error) {
	sql, args, err := r.sb.Select("user_id", "expires_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = db.QuerierFrom(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, apperrors.ErrTokenNotFound
		}
		return 0, time.Time{}, fmt.Errorf("error getting token: %w", err)
	}
	return userID, expiresAt, nil
}

// DeleteToken removes a refresh token, invalidating it
func (r *TokenRepository) DeleteToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete token query: %w", err)
	}

	_, err = db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting token: %w", err)
	}
	return nil
}

// DeleteUserTokens removes every refresh token belonging to a user
func (r *TokenRepository) DeleteUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user tokens query: %w", err)
	}

	_, err = db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user tokens: %w", err)
	}
	return nil
}

// DeleteExpiredTokens prunes refresh tokens that are past their expiry
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	result, err := db.QuerierFrom(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return result.RowsAffected(), nil
}
