package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
)

// errorMapping ties an error kind to its HTTP answer
type errorMapping struct {
	kind    error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first kind the error matches wins.
var errorMappings = []errorMapping{
	{apperrors.ErrValidation, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrInvalidState, http.StatusConflict, dto.ErrorCodeInvalidState, "Invalid state"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},
	{apperrors.ErrForbidden, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrPartialWrite, http.StatusInternalServerError, dto.ErrorCodePartialWrite, "Operation was only partially applied"},
	{apperrors.ErrIO, http.StatusInternalServerError, dto.ErrorCodeStorageError, "Storage error"},
	{apperrors.ErrCorruptData, http.StatusInternalServerError, dto.ErrorCodeStorageError, "Stored data is corrupt"},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// Client errors carry the message and field of a CustomError; server errors
// are logged and answered with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")

	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			status = m.status
			detail = dto.NewErrorDetail(m.code, m.message)
			break
		}
	}

	if status < http.StatusInternalServerError {
		var ce *apperrors.CustomError
		if errors.As(err, &ce) {
			detail.Message = ce.Message
			detail.Field = ce.Field
			if len(ce.Details) > 0 {
				detail = detail.WithDetails(ce.Details)
			}
		}
	} else {
		var pw *apperrors.PartialWriteError
		if errors.As(err, &pw) {
			detail = detail.WithDetails(map[string]interface{}{"orphans": pw.Orphans}).
				WithSeverity(dto.ErrorSeverityCritical)
		}
		if gin.Mode() == gin.DebugMode {
			detail = detail.WithDebugInfo("%v", err)
		}
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
