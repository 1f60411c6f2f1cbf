package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authz "github.com/yassine/stagelink/internal/app/auth"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

func handleErr(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return w.Code, &resp
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"not found", apperrors.ErrOfferNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"permission denied", authz.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"duplicate application is a validation failure", apperrors.ErrDuplicateApplication, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"email conflict", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := handleErr(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIError_ValidationFieldDetail(t *testing.T) {
	status, resp := handleErr(t, apperrors.NewValidationError("deadline", "application deadline cannot be in the past"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "deadline", resp.Error.Field)
	assert.Equal(t, "application deadline cannot be in the past", resp.Error.Message)
}
