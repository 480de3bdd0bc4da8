package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kbukum/dispatch/errors"
)

func TestToAppError(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		name      string
		err       error
		code      apperrors.ErrorCode
		retryable bool
	}{
		{"connection", newError(OpGet, ErrCodeConnection, cause), apperrors.ErrCodeConnectionFailed, true},
		{"timeout", newError(OpGet, ErrCodeTimeout, cause), apperrors.ErrCodeTimeout, true},
		{"request", newError(OpGet, ErrCodeRequest, cause), apperrors.ErrCodeInvalidInput, false},
		{"encode", newError(OpPost, ErrCodeEncode, cause), apperrors.ErrCodeInvalidInput, false},
		{"decode", newError(OpGet, ErrCodeDecode, cause), apperrors.ErrCodeInvalidResponse, false},
		{"filesystem", newError(OpDownload, ErrCodeFilesystem, cause), apperrors.ErrCodeFilesystem, false},
		{"status", &StatusError{StatusCode: http.StatusNotFound, Body: "nope"}, apperrors.ErrCodeUpstream, false},
		{"plain", cause, apperrors.ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAppError(tt.err)
			if got.Code != tt.code {
				t.Errorf("Code = %s, want %s", got.Code, tt.code)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.retryable)
			}
		})
	}
}

func TestToAppError_Nil(t *testing.T) {
	if ToAppError(nil) != nil {
		t.Error("expected nil")
	}
}

func TestEnvelope_Problem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("duplicate"))
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv.URL)
	env := Get[item](context.Background(), d, "/items", nil)
	p := env.Problem()
	if p == nil {
		t.Fatal("expected a problem")
	}
	if p.HTTPStatus != http.StatusConflict {
		t.Errorf("HTTPStatus = %d", p.HTTPStatus)
	}
	if p.Details["body"] != "duplicate" {
		t.Errorf("Details = %v", p.Details)
	}

	ok := &Envelope[item]{IsSuccess: true, StatusCode: http.StatusOK}
	if ok.Problem() != nil {
		t.Error("success should have no problem")
	}
}

func TestEnvelope_ProblemLocal(t *testing.T) {
	d := newTestDispatcher(t, unreachableURL())
	p := Get[item](context.Background(), d, "/items", nil).Problem()
	if p == nil || p.Code != apperrors.ErrCodeConnectionFailed {
		t.Fatalf("Problem() = %v", p)
	}
	if p.Details["operation"] != OpGet {
		t.Errorf("operation detail = %v", p.Details["operation"])
	}
}
