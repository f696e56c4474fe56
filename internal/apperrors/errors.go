package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no authenticated identity accompanies the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the identity is known but lacks the role or scope for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a state transition that is not allowed from the current state.
var ErrConflict = errors.New("conflict")

// ErrLocked indicates that the target resource is locked against mutation.
var ErrLocked = errors.New("resource locked")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// ErrInvariantViolation indicates a broken money or cascade invariant. It is never recoverable.
var ErrInvariantViolation = errors.New("invariant violation")

// Code is a stable, machine-readable error code surfaced to API clients.
type Code string

const (
	CodeUnauthorized         Code = "UNAUTHORIZED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeNoBoutiqueAssignment Code = "NO_BOUTIQUE_ASSIGNMENT"
	CodeCrossBoutiqueBlocked Code = "CROSS_BOUTIQUE_BLOCKED"
	CodeDayLocked            Code = "DAY_LOCKED"
	CodeWeekLocked           Code = "WEEK_LOCKED"
	CodeAlreadyDecided       Code = "ALREADY_DECIDED"
	CodeDiffNotZero          Code = "DIFF_NOT_ZERO"
	CodeLedgerLocked         Code = "LEDGER_LOCKED"
	CodeValidationFailed     Code = "VALIDATION_FAILED"
	CodeNotFound             Code = "NOT_FOUND"
	CodeConflict             Code = "CONFLICT"
	CodeGenerationInProgress Code = "GENERATION_IN_PROGRESS"
	CodeInvariantViolation   Code = "INVARIANT_VIOLATION"
	CodeInternal             Code = "INTERNAL"
)

// AppError is an error carrying a stable code and, for validation failures, the offending field.
type AppError struct {
	Code    Code
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping the given sentinel.
func NewAppError(code Code, message string, sentinel error) *AppError {
	return &AppError{Code: code, Message: message, Err: sentinel}
}

// NewValidationFailedError reports a caller-supplied field that failed a constraint.
func NewValidationFailedError(field, constraint string) *AppError {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: constraint,
		Field:   field,
		Err:     ErrValidation,
	}
}

// NewNotFoundError reports a missing resource of the given kind.
func NewNotFoundError(kind, id string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
		Err:     ErrNotFound,
	}
}

// NewConflictError reports a disallowed state transition.
func NewConflictError(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: ErrConflict}
}

// NewForbiddenError reports a role or scope failure. The detail is for logs; the HTTP
// boundary only ever answers "Forbidden".
func NewForbiddenError(code Code, detail string) *AppError {
	return &AppError{Code: code, Message: detail, Err: ErrForbidden}
}

// NewUnauthorizedError reports a missing identity.
func NewUnauthorizedError() *AppError {
	return &AppError{Code: CodeUnauthorized, Message: "authentication required", Err: ErrUnauthorized}
}

// NewInvariantViolationError reports a broken money or cascade invariant.
func NewInvariantViolationError(message string) *AppError {
	return &AppError{Code: CodeInvariantViolation, Message: message, Err: ErrInvariantViolation}
}

// ScheduleLockedError is returned when a schedule write touches a locked day or week.
type ScheduleLockedError struct {
	Code      Code
	Date      string
	WeekStart string
	LockedBy  string
	LockedAt  time.Time
}

func (e *ScheduleLockedError) Error() string {
	if e.Code == CodeWeekLocked {
		return fmt.Sprintf("%s: week starting %s locked by %s at %s", e.Code, e.WeekStart, e.LockedBy, e.LockedAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s: %s locked by %s at %s", e.Code, e.Date, e.LockedBy, e.LockedAt.Format(time.RFC3339))
}

func (e *ScheduleLockedError) Unwrap() error {
	return ErrLocked
}

// CrossBoutiqueError is returned when an entity resolves to a boutique outside the caller's scope.
type CrossBoutiqueError struct {
	EntityType string
	EntityID   string
	BoutiqueID string
}

func (e *CrossBoutiqueError) Error() string {
	return fmt.Sprintf("%s: %s %s belongs to boutique %s", CodeCrossBoutiqueBlocked, e.EntityType, e.EntityID, e.BoutiqueID)
}

func (e *CrossBoutiqueError) Unwrap() error {
	return ErrForbidden
}

// CodeOf extracts the stable code from err, defaulting by sentinel.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var lockErr *ScheduleLockedError
	if errors.As(err, &lockErr) {
		return lockErr.Code
	}
	var crossErr *CrossBoutiqueError
	if errors.As(err, &crossErr) {
		return CodeCrossBoutiqueBlocked
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrValidation):
		return CodeValidationFailed
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrInvariantViolation):
		return CodeInvariantViolation
	default:
		return CodeInternal
	}
}
