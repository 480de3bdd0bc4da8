// Package errors provides structured application errors with machine-readable
// codes, an HTTP status hint and retryable detection.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status associated with this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors ---

// ConnectionFailed creates an AppError for an unreachable endpoint.
func ConnectionFailed(operation string, cause error) *AppError {
	return New(ErrCodeConnectionFailed, "The remote endpoint could not be reached.", http.StatusServiceUnavailable).
		WithDetail("operation", operation).WithCause(cause)
}

// Timeout creates an AppError for an operation that timed out.
func Timeout(operation string, cause error) *AppError {
	return New(ErrCodeTimeout, "The request took too long.", http.StatusGatewayTimeout).
		WithDetail("operation", operation).WithCause(cause)
}

// Upstream creates an AppError for a non-success response. The body is kept
// as a detail.
func Upstream(status int, body string) *AppError {
	e := New(ErrCodeUpstream, fmt.Sprintf("The remote endpoint answered %d %s.", status, http.StatusText(status)), status)
	if body != "" {
		e.WithDetail("body", body)
	}
	return e
}

// InvalidResponse creates an AppError for an undecodable response payload.
func InvalidResponse(cause error) *AppError {
	return New(ErrCodeInvalidResponse, "The response payload could not be decoded.", http.StatusBadGateway).
		WithCause(cause)
}

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, fmt.Sprintf("Invalid input: %s", reason), http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation creates an AppError for validation errors.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("Missing required field: %s", field), http.StatusBadRequest).
		WithDetail("field", field)
}

// InvalidFormat creates an AppError for an invalid field format.
func InvalidFormat(field, expectedFormat string) *AppError {
	return New(ErrCodeInvalidFormat, fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat), http.StatusBadRequest).
		WithDetail("field", field).WithDetail("expected_format", expectedFormat)
}

// Configuration creates an AppError for configuration that could not be loaded.
func Configuration(cause error) *AppError {
	return New(ErrCodeConfiguration, "The configuration could not be loaded.", http.StatusInternalServerError).
		WithCause(cause)
}

// Filesystem creates an AppError for a local write failure. path may be empty.
func Filesystem(path string, cause error) *AppError {
	if path == "" {
		return New(ErrCodeFilesystem, "Unable to write the file.", http.StatusInternalServerError).WithCause(cause)
	}
	return New(ErrCodeFilesystem, fmt.Sprintf("Unable to write %s.", path), http.StatusInternalServerError).
		WithDetail("path", path).WithCause(cause)
}

// Internal creates an AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.", http.StatusInternalServerError).
		WithCause(cause)
}
