package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the core wraps exactly one of these,
// so callers only ever need errors.Is.
var (
	// Caller errors
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")

	// Storage errors
	ErrIO          = errors.New("storage i/o error")
	ErrCorruptData = errors.New("corrupt data")

	// Cross-collection writes that could not be completed or compensated
	ErrPartialWrite = errors.New("partial write")

	// Authentication / authorization errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithField records the offending input field
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Validation builds a ValidationError for a single field.
func Validation(field, format string, args ...interface{}) *CustomError {
	return NewCustomError(ErrValidation, fmt.Sprintf(format, args...)).WithField(field)
}

// NotFound builds a NotFoundError, e.g. NotFound("student", id).
func NotFound(entity, id string) *CustomError {
	return NewCustomError(ErrNotFound, fmt.Sprintf("%s not found", entity)).
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// Conflict builds a ConflictError for a violated uniqueness invariant.
func Conflict(format string, args ...interface{}) *CustomError {
	return NewCustomError(ErrConflict, fmt.Sprintf(format, args...))
}

// InvalidState builds an InvalidStateError.
func InvalidState(format string, args ...interface{}) *CustomError {
	return NewCustomError(ErrInvalidState, fmt.Sprintf(format, args...))
}

// Forbidden builds a permission error with a message.
func Forbidden(message string) *CustomError {
	return NewCustomError(ErrForbidden, message)
}

// PartialWriteError reports a cross-collection operation that left records
// behind in one collection after a failure in another.
type PartialWriteError struct {
	Op      string
	Orphans map[string][]string // collection -> ids
	Cause   error
}

func (e *PartialWriteError) Error() string {
	parts := make([]string, 0, len(e.Orphans))
	for kind, ids := range e.Orphans {
		parts = append(parts, kind+"="+strings.Join(ids, ","))
	}
	return fmt.Sprintf("%s: partial write, orphaned records [%s]: %v", e.Op, strings.Join(parts, " "), e.Cause)
}

// Is makes errors.Is(err, ErrPartialWrite) hold.
func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

func (e *PartialWriteError) Unwrap() error {
	return e.Cause
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Retryable reports whether an error is a transient storage failure.
// Corrupt data is never retryable.
func Retryable(err error) bool {
	return errors.Is(err, ErrIO) && !errors.Is(err, ErrCorruptData)
}
