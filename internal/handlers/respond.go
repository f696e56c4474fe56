package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a stable error code onto its HTTP status.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.CodeForbidden, apperrors.CodeNoBoutiqueAssignment, apperrors.CodeCrossBoutiqueBlocked:
		return http.StatusForbidden
	case apperrors.CodeDayLocked, apperrors.CodeWeekLocked:
		return http.StatusLocked
	case apperrors.CodeAlreadyDecided, apperrors.CodeDiffNotZero, apperrors.CodeLedgerLocked,
		apperrors.CodeConflict, apperrors.CodeGenerationInProgress:
		return http.StatusConflict
	case apperrors.CodeValidationFailed:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvariantViolation, apperrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Scope and auth failures only ever say "Forbidden" or
// "Unauthorized"; the detail goes to the log.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := apperrors.CodeOf(err)
	status := statusFor(code)
	body := dto.ErrorResponse{Code: string(code)}

	switch status {
	case http.StatusUnauthorized:
		body.Message = "Unauthorized"
		logger.Warn("Request unauthorized", slog.String("error", err.Error()))
	case http.StatusForbidden:
		body.Message = "Forbidden"
		logger.Warn("Request forbidden", slog.String("code", string(code)), slog.String("error", err.Error()))
	case http.StatusInternalServerError:
		body.Message = "Internal server error"
		logger.Error("Request failed", slog.String("code", string(code)), slog.String("error", err.Error()))
	default:
		body.Message = err.Error()
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			body.Message = appErr.Message
			body.Field = appErr.Field
		}
		var lockErr *apperrors.ScheduleLockedError
		if errors.As(err, &lockErr) {
			body.Message = "Schedule is locked"
			body.Lock = &dto.LockInfo{
				Date:      lockErr.Date,
				WeekStart: lockErr.WeekStart,
				LockedBy:  lockErr.LockedBy,
				LockedAt:  lockErr.LockedAt,
			}
		}
		logger.Info("Request rejected", slog.String("code", string(code)), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, body)
}

// respondBindError reports a request that failed binding or struct validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    string(apperrors.CodeValidationFailed),
		Message: "Invalid request: " + err.Error(),
		Field:   firstInvalidField(err),
	})
}

// identityOrAbort fetches the caller placed in the context by AuthMiddleware.
func identityOrAbort(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromCtx(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError())
		return domain.Identity{}, false
	}
	return identity, true
}
