package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock is the wall clock; tests pin it.
	Clock func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a recoverable problem, typically a failed best-effort side effect
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Today returns the current Riyadh civil date.
func (s *BaseService) Today() time.Time {
	return calendar.TodayInRiyadh(s.Now())
}

// requireIdentity rejects calls that carry no authenticated user.
func requireIdentity(identity domain.Identity) error {
	if identity.UserID == "" {
		return apperrors.NewUnauthorizedError()
	}
	return nil
}

// requireRole fails with FORBIDDEN when allowed is false.
func requireRole(identity domain.Identity, allowed bool, action string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if !allowed {
		return apperrors.NewForbiddenError(apperrors.CodeForbidden, string(identity.Role)+" may not "+action)
	}
	return nil
}

// parseDateField parses a "YYYY-MM-DD" field or reports it as invalid.
func parseDateField(field, value string) (time.Time, error) {
	d, err := calendar.ParseDateKey(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// parseMonthField parses a "YYYY-MM" field or reports it as invalid.
func parseMonthField(field, value string) (time.Time, error) {
	m, err := calendar.ParseMonthKey(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError(field, "must be a month in YYYY-MM format")
	}
	return m, nil
}
