package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Startup errors
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// Request errors
	ErrorTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized    ErrorType = "UNAUTHORIZED"

	// Upstream errors
	ErrorTypeUpstream   ErrorType = "UPSTREAM"
	ErrorTypeEnrichment ErrorType = "ENRICHMENT"

	// Application errors
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Code       string    `json:"code,omitempty"`
	Details    string    `json:"details,omitempty"`
	Operation  string    `json:"-"`
	EntityID   string    `json:"-"`
	Cause      error     `json:"-"`
	StackTrace string    `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// WithEntity records which upstream entity and operation the error belongs to
func (e *AppError) WithEntity(operation, entityID string) *AppError {
	e.Operation = operation
	e.EntityID = entityID
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for common error types

// NewConfigurationError creates an error for missing or invalid startup configuration.
// The process must not start when one is returned.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewInvalidArgument creates a request validation error
func NewInvalidArgument(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidArgument,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		StackTrace: captureStackTrace(),
	}
}

// NewUpstreamError creates an error for a failed Graph API call. status is the
// HTTP status the failure maps to; code is the Graph API error code (0 when the
// upstream returned none).
func NewUpstreamError(status int, code int, message string) *AppError {
	if status == 0 {
		status = http.StatusBadGateway
	}
	e := &AppError{
		Type:       ErrorTypeUpstream,
		Message:    "Facebook API error",
		Details:    message,
		HTTPStatus: status,
		StackTrace: captureStackTrace(),
	}
	if code != 0 {
		e.Code = strconv.Itoa(code)
	}
	return e
}

// NewEnrichmentFailure wraps a secondary lookup failure. It is only ever logged.
func NewEnrichmentFailure(entityID string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeEnrichment,
		Message:    "secondary lookup failed",
		EntityID:   entityID,
		Operation:  "enrich",
		Cause:      err,
		HTTPStatus: http.StatusOK,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsInvalidArgument checks if an error is a request validation error
func IsInvalidArgument(err error) bool {
	return IsType(err, ErrorTypeInvalidArgument)
}

// IsUpstream checks if an error came from the Graph API
func IsUpstream(err error) bool {
	return IsType(err, ErrorTypeUpstream)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return IsType(err, ErrorTypeConfiguration)
}
