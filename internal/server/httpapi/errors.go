package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/gin-gonic/gin"
)

// Stable error codes of the {"error": {"code", "message"}} payload.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeUnavailable        = "SERVICE_UNAVAILABLE"
)

// respondError sends unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func respondValidation(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeValidation, message)
}

// respondUnauthorized is used for every token failure. Missing, malformed,
// forged and expired tokens are indistinguishable to the client.
func respondUnauthorized(c *gin.Context) {
	respondError(c, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
}

// respondServiceError maps a service error to its HTTP form. Anything not
// recognised becomes a 500 without detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respondValidation(c, "invalid input")
	case errors.Is(err, common.ErrDuplicateAccount):
		respondError(c, http.StatusConflict, CodeDuplicateAccount, "an account with this email already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		respondError(c, http.StatusForbidden, CodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		respondUnauthorized(c)
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, "not found")
	default:
		respondError(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
