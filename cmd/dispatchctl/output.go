package main

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/dispatch/errors"
	"github.com/kbukum/dispatch/httpclient"
)

// result is the printed form of an Envelope.
type result struct {
	Success    bool                 `json:"success" yaml:"success"`
	StatusCode int                  `json:"status_code" yaml:"status_code"`
	Message    string               `json:"message,omitempty" yaml:"message,omitempty"`
	Data       any                  `json:"data,omitempty" yaml:"data,omitempty"`
	Headers    map[string]string    `json:"headers,omitempty" yaml:"headers,omitempty"`
	DurationMS int64                `json:"duration_ms" yaml:"duration_ms"`
	Error      *apperrors.ErrorBody `json:"error,omitempty" yaml:"error,omitempty"`
}

// toResult flattens env. data is printed only on success.
func toResult[T any](env *httpclient.Envelope[T], data any, includeHeaders bool) result {
	r := result{
		Success:    env.IsSuccess,
		StatusCode: env.StatusCode,
		Message:    env.Message,
		DurationMS: env.Duration.Milliseconds(),
	}
	if env.IsSuccess {
		r.Data = data
	}
	if includeHeaders {
		r.Headers = env.Headers
	}
	if p := env.Problem(); p != nil {
		body := p.ToResponse().Error
		r.Error = &body
	}
	return r
}

// encode writes v to w as JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	if format == OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
