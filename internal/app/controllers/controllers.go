package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/middleware"
)

// currentUserID extracts the authenticated user ID set by the auth middleware.
// Writes a 401 response and returns false when it is missing.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	userID, ok := value.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}
