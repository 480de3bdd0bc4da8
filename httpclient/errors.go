package httpclient

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode classifies local failures.
type ErrorCode int

const (
	// ErrCodeConnection indicates a connection failure (refused, DNS, TLS, etc).
	ErrCodeConnection ErrorCode = iota
	// ErrCodeTimeout indicates the transport gave up waiting.
	ErrCodeTimeout
	// ErrCodeRequest indicates the request could not be built (malformed URL, bad method).
	ErrCodeRequest
	// ErrCodeEncode indicates the request body could not be serialized.
	ErrCodeEncode
	// ErrCodeDecode indicates the response body could not be deserialized.
	ErrCodeDecode
	// ErrCodeFilesystem indicates a download could not be written.
	ErrCodeFilesystem
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeRequest:
		return "request"
	case ErrCodeEncode:
		return "encode"
	case ErrCodeDecode:
		return "decode"
	case ErrCodeFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// Error is a local failure captured by a Dispatcher operation.
type Error struct {
	// Op is the operation label, e.g. "GetAsync".
	Op string
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("httpclient: %s %s: %s", e.Op, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, code ErrorCode, err error) *Error {
	return &Error{Op: op, Code: code, Message: err.Error(), Err: err}
}

// transportError classifies an error returned by the transport collaborator.
func transportError(ctx context.Context, op string, err error) *Error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return newError(op, ErrCodeTimeout, err)
	}
	return newError(op, ErrCodeConnection, err)
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return hasCode(err, ErrCodeTimeout)
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	return hasCode(err, ErrCodeConnection)
}

// IsRequest checks if an error is a request construction error.
func IsRequest(err error) bool {
	return hasCode(err, ErrCodeRequest)
}

// IsEncode checks if an error is a body serialization error.
func IsEncode(err error) bool {
	return hasCode(err, ErrCodeEncode)
}

// IsDecode checks if an error is a payload deserialization error.
func IsDecode(err error) bool {
	return hasCode(err, ErrCodeDecode)
}

// IsFilesystem checks if an error is a download write error.
func IsFilesystem(err error) bool {
	return hasCode(err, ErrCodeFilesystem)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
