package httpclient

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// StatusNotSent is reported when a request never produced a response.
	StatusNotSent = 0
	// StatusInternalError is reported when a download fails locally.
	StatusInternalError = http.StatusInternalServerError
)

// NoContent is the payload type of operations that never decode a body.
type NoContent struct{}

// Envelope is the uniform outcome of every Dispatcher operation.
//
// Exactly one of Data and Message is populated: Data when IsSuccess is true,
// Message otherwise. Operations returning Result leave both empty on success.
type Envelope[T any] struct {
	// IsSuccess is true when no local error occurred and the status is 2xx.
	IsSuccess bool
	// StatusCode is the transport status, or StatusNotSent / StatusInternalError.
	StatusCode int
	// Message is the raw response body on remote non-success, or the
	// operation-prefixed description of a local failure.
	Message string
	// Data is the decoded payload. Only meaningful when IsSuccess is true.
	Data T
	// Err is the local failure. Nil for successes and remote non-success.
	Err error
	// Headers are the response headers (first value per name).
	Headers map[string]string
	// Duration is the wall time spent on the call.
	Duration time.Duration
}

// Result is the envelope of operations without a payload.
type Result = Envelope[NoContent]

// Failed reports whether the call did not succeed.
func (e *Envelope[T]) Failed() bool {
	return !e.IsSuccess
}

// Unwrap returns the local failure, if any.
func (e *Envelope[T]) Unwrap() error {
	return e.Err
}

// AsError converts a failed envelope into an error. It returns nil on
// success, the local *Error when one occurred, and a *StatusError for
// remote non-success.
func (e *Envelope[T]) AsError() error {
	switch {
	case e.IsSuccess:
		return nil
	case e.Err != nil:
		return e.Err
	default:
		return &StatusError{StatusCode: e.StatusCode, Body: e.Message}
	}
}

// StatusError describes a well-formed response with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("httpclient: %s (HTTP %d): %s", ClassifyStatus(e.StatusCode), e.StatusCode, e.Body)
}

// StatusClass groups HTTP status codes by their leading digit.
type StatusClass int

const (
	StatusClassUnknown StatusClass = iota
	StatusClassInformational
	StatusClassSuccess
	StatusClassRedirect
	StatusClassClientError
	StatusClassServerError
)

// String returns the class name.
func (c StatusClass) String() string {
	switch c {
	case StatusClassInformational:
		return "informational"
	case StatusClassSuccess:
		return "success"
	case StatusClassRedirect:
		return "redirect"
	case StatusClassClientError:
		return "client_error"
	case StatusClassServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// ClassifyStatus returns the class of an HTTP status code.
func ClassifyStatus(statusCode int) StatusClass {
	switch {
	case statusCode >= 100 && statusCode < 200:
		return StatusClassInformational
	case statusCode >= 200 && statusCode < 300:
		return StatusClassSuccess
	case statusCode >= 300 && statusCode < 400:
		return StatusClassRedirect
	case statusCode >= 400 && statusCode < 500:
		return StatusClassClientError
	case statusCode >= 500 && statusCode < 600:
		return StatusClassServerError
	default:
		return StatusClassUnknown
	}
}

// isSuccessStatus reports whether the status is 2xx.
func isSuccessStatus(statusCode int) bool {
	return ClassifyStatus(statusCode) == StatusClassSuccess
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
