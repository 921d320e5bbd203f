package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vytor/lumina/internal/flashcard"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInvalidArgument    = "INVALID_ARGUMENT"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
	ErrCodeUnavailable        = "UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_STATE")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewUnavailableError is returned when a dependency such as the database cannot serve requests.
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Status:  503,
	}
}

// FromEngine maps review engine errors onto transport errors. Errors that do
// not come from the engine become INTERNAL_ERROR.
func FromEngine(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	switch {
	case stderrors.Is(err, flashcard.ErrInvalidArgument):
		return &AppError{Code: ErrCodeInvalidArgument, Message: err.Error(), Status: 400, Err: err}
	case stderrors.Is(err, flashcard.ErrInvalidState):
		return &AppError{Code: ErrCodeInvalidState, Message: err.Error(), Status: 409, Err: err}
	case stderrors.Is(err, flashcard.ErrPersistence):
		return &AppError{Code: ErrCodePersistenceFailure, Message: "card could not be saved, rating not recorded", Status: 503, Err: err}
	default:
		return NewInternalError(err)
	}
}
