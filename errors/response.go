package errors

import (
	stderrors "errors"
)

// ErrorResponse is the serialized form of an AppError.
type ErrorResponse struct {
	Error ErrorBody `json:"error" yaml:"error"`
}

// ErrorBody contains the error details.
type ErrorBody struct {
	Code      ErrorCode      `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
	Cause     string         `json:"cause,omitempty" yaml:"cause,omitempty"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for serialization.
func (e *AppError) ToResponse() ErrorResponse {
	body := ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
	}
	if e.Cause != nil {
		body.Cause = e.Cause.Error()
	}
	return ErrorResponse{Error: body}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
