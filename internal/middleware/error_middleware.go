package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/yassine/stagelink/internal/app/auth"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfileNotFound,
		apperrors.ErrOfferNotFound,
		apperrors.ErrApplicationNotFound,
		apperrors.ErrNotificationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("Resource not found"), err)

	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		authz.ErrPermissionDenied,
		authz.ErrNotCandidate,
		authz.ErrNotCompany):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, message("Permission denied"), err)

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled", err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password", err)

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists", err)

	case errors.Is(err, apperrors.ErrDuplicateApplication):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "You already applied to this offer", err)

	case apperrors.Is(err, apperrors.ErrResourceAlreadyExists, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, message("Resource already exists"), err)

	case errors.Is(err, apperrors.ErrInvalidEmail):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email format", err)

	case errors.Is(err, apperrors.ErrInvalidPassword):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Password must be at least 8 characters", err)

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))
		if errors.As(err, &custom) && custom.Details != nil {
			if field, ok := custom.Details["field"].(string); ok {
				errorDetail = errorDetail.WithField(field)
			}
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error", nil)
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, _ error) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
