package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: FormatJSON}
	return NewWithWriter(cfg, &buf, "test-svc"), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	l, buf := newBufferLogger(t, "debug")
	l.Info("hello", Fields(FieldOperation, "GetAsync", FieldStatus, 200))

	m := decodeLine(t, buf)
	if m["message"] != "hello" {
		t.Errorf("message = %v, want hello", m["message"])
	}
	if m[FieldService] != "test-svc" {
		t.Errorf("service = %v, want test-svc", m[FieldService])
	}
	if m[FieldOperation] != "GetAsync" {
		t.Errorf("operation = %v, want GetAsync", m[FieldOperation])
	}
	if m[FieldStatus] != float64(200) {
		t.Errorf("status = %v, want 200", m[FieldStatus])
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	l, buf := newBufferLogger(t, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug/info to be filtered, got %q", buf.String())
	}
	l.Warn("shown")
	if m := decodeLine(t, buf); m["level"] != "warn" {
		t.Errorf("level = %v, want warn", m["level"])
	}
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := newBufferLogger(t, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info, got %q", buf.String())
	}
	l.Info("shown")
	decodeLine(t, buf)
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, &buf, "dispatchctl")
	l.Info("ready", Fields("k", "v"))

	out := buf.String()
	if !strings.Contains(out, "[DIS][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "k:") || !strings.Contains(out, "ready") {
		t.Errorf("expected message and field, got %q", out)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if lvl := l.GetLogger().GetLevel().String(); lvl != "debug" {
		t.Errorf("level = %q, want debug", lvl)
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithComponent("httpclient").Info("x")
	if m := decodeLine(t, buf); m[FieldComponent] != "httpclient" {
		t.Errorf("component = %v, want httpclient", m[FieldComponent])
	}
}

func TestWithError(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, buf); m["error"] != "boom" {
		t.Errorf("error = %v, want boom", m["error"])
	}
}

func TestWithFields(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithFields(Fields("a", "1")).Info("x")
	if m := decodeLine(t, buf); m["a"] != "1" {
		t.Errorf("a = %v, want 1", m["a"])
	}
}

func TestWithContext_Empty(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithContext(context.Background()).Info("x")
	m := decodeLine(t, buf)
	if _, ok := m[FieldTraceID]; ok {
		t.Error("expected no trace_id without a span")
	}
	if _, ok := m[FieldRequestID]; ok {
		t.Error("expected no request_id without one in context")
	}
}

func TestWithContext_SpanAndRequestID(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	ctx = ContextWithRequestID(ctx, "req-1")

	l, buf := newBufferLogger(t, "info")
	l.WithContext(ctx).Info("x")

	m := decodeLine(t, buf)
	if m[FieldTraceID] != span.SpanContext().TraceID().String() {
		t.Errorf("trace_id = %v, want %s", m[FieldTraceID], span.SpanContext().TraceID())
	}
	if m[FieldSpanID] != span.SpanContext().SpanID().String() {
		t.Errorf("span_id = %v, want %s", m[FieldSpanID], span.SpanContext().SpanID())
	}
	if m[FieldRequestID] != "req-1" {
		t.Errorf("request_id = %v, want req-1", m[FieldRequestID])
	}
}

func TestInitAndGlobal(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	Init(Config{Level: "error", Format: FormatJSON}, "global-svc")
	if GetGlobalLogger().service != "global-svc" {
		t.Errorf("expected global service 'global-svc', got %q", GetGlobalLogger().service)
	}

	// Package-level helpers must not panic.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"pretty", Config{Level: "debug", Format: "pretty", Output: "stderr"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)

	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	if Get("unregistered-component") == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestRegisterDefaults_RebindsAfterInit(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	Register("httpclient", NewDefault("stale-svc"))
	Init(Config{Level: "error", Format: FormatJSON}, "fresh-svc")
	RegisterDefaults("httpclient", "config")

	for _, name := range []string{"httpclient", "config"} {
		l := Get(name)
		if l == nil {
			t.Fatalf("expected non-nil logger for %q", name)
		}
		if l.service != "fresh-svc" {
			t.Errorf("%s service = %q, want fresh-svc", name, l.service)
		}
	}

	names := Registered()
	for _, want := range []string{"config", "httpclient"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Registered() = %v, missing %q", names, want)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Registered() not sorted: %v", names)
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		kvs  []interface{}
		want int
	}{
		{"empty", nil, 0},
		{"pairs", []interface{}{"a", 1, "b", "x"}, 2},
		{"odd count drops trailing key", []interface{}{"a", 1, "b"}, 1},
		{"non-string key skipped", []interface{}{42, "x", "c", true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fields(tt.kvs...); len(got) != tt.want {
				t.Errorf("Fields() len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
