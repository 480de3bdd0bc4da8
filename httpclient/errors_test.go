package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeConnection, "connection"},
		{ErrCodeTimeout, "timeout"},
		{ErrCodeRequest, "request"},
		{ErrCodeEncode, "encode"},
		{ErrCodeDecode, "decode"},
		{ErrCodeFilesystem, "filesystem"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := newError(OpGet, ErrCodeConnection, fmt.Errorf("connection refused"))
	want := "httpclient: GetAsync connection: connection refused"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("bad input")
	outer := newError(OpPost, ErrCodeEncode, inner)
	if !errors.Is(outer, inner) {
		t.Error("errors.Is did not find inner error")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTransportError(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want ErrorCode
	}{
		{"refused", context.Background(), &net.OpError{Op: "dial", Err: fmt.Errorf("connection refused")}, ErrCodeConnection},
		{"deadline", context.Background(), fmt.Errorf("wrapped: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"net timeout", context.Background(), &net.OpError{Op: "read", Err: timeoutErr{}}, ErrCodeTimeout},
		{"cancelled context", cancelled, fmt.Errorf("request canceled"), ErrCodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := transportError(tt.ctx, OpGet, tt.err)
			if e.Code != tt.want {
				t.Errorf("code = %v, want %v", e.Code, tt.want)
			}
			if e.Op != OpGet {
				t.Errorf("op = %q, want %q", e.Op, OpGet)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	cause := fmt.Errorf("boom")
	checks := []struct {
		name string
		err  error
		fn   func(error) bool
	}{
		{"timeout", newError(OpGet, ErrCodeTimeout, cause), IsTimeout},
		{"connection", newError(OpGet, ErrCodeConnection, cause), IsConnection},
		{"request", newError(OpGet, ErrCodeRequest, cause), IsRequest},
		{"encode", newError(OpPost, ErrCodeEncode, cause), IsEncode},
		{"decode", newError(OpGet, ErrCodeDecode, cause), IsDecode},
		{"filesystem", newError(OpDownload, ErrCodeFilesystem, cause), IsFilesystem},
	}
	for _, c := range checks {
		if !c.fn(c.err) {
			t.Errorf("Is%s should match its own code", c.name)
		}
		if !c.fn(fmt.Errorf("wrapped: %w", c.err)) {
			t.Errorf("Is%s should match a wrapped error", c.name)
		}
	}
	if IsTimeout(newError(OpGet, ErrCodeConnection, cause)) {
		t.Error("IsTimeout should not match a connection error")
	}
	if IsDecode(cause) {
		t.Error("IsDecode should not match a plain error")
	}
}
