package httpclient

import (
	"errors"
	"io/fs"

	apperrors "github.com/kbukum/dispatch/errors"
)

// ToAppError converts a Dispatcher failure to an AppError.
// It accepts the *Error and *StatusError values produced by Envelope.AsError.
func ToAppError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return apperrors.Upstream(statusErr.StatusCode, statusErr.Body)
	}

	var e *Error
	if !errors.As(err, &e) {
		return apperrors.Internal(err)
	}

	var appErr *apperrors.AppError
	switch e.Code {
	case ErrCodeConnection:
		appErr = apperrors.ConnectionFailed(e.Op, e.Err)
	case ErrCodeTimeout:
		appErr = apperrors.Timeout(e.Op, e.Err)
	case ErrCodeRequest, ErrCodeEncode:
		appErr = apperrors.InvalidInput("", e.Message).WithCause(e.Err)
	case ErrCodeDecode:
		appErr = apperrors.InvalidResponse(e.Err)
	case ErrCodeFilesystem:
		var path string
		var pathErr *fs.PathError
		if errors.As(e.Err, &pathErr) {
			path = pathErr.Path
		}
		appErr = apperrors.Filesystem(path, e.Err)
	default:
		appErr = apperrors.Internal(e.Err)
	}
	return appErr.WithDetail("operation", e.Op)
}

// Problem returns the failure of e as an AppError, or nil on success.
func (e *Envelope[T]) Problem() *apperrors.AppError {
	return ToAppError(e.AsError())
}
