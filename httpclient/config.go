package httpclient

import (
	"fmt"
	"os"
	"time"

	"github.com/kbukum/dispatch/validation"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDirMode = os.FileMode(0o755)
)

// TransportKind selects the transport collaborator built by New.
type TransportKind string

const (
	// TransportNetHTTP sends requests through a *http.Client.
	TransportNetHTTP TransportKind = "net/http"
	// TransportResty sends requests through a resty client.
	TransportResty TransportKind = "resty"
)

// QueryStyle selects how query parameters are appended to a path.
type QueryStyle string

const (
	// QueryStyleCompact joins pairs with "&" and adds nothing when there are no pairs.
	QueryStyleCompact QueryStyle = "compact"
	// QueryStyleLegacy keeps a trailing "&" after the last pair and emits the
	// separator even when there are no pairs.
	QueryStyleLegacy QueryStyle = "legacy"
)

// Header is a single default header. Order is preserved.
type Header struct {
	Name  string `yaml:"name" mapstructure:"name" validate:"required"`
	Value string `yaml:"value" mapstructure:"value"`
}

// Config configures a Dispatcher.
type Config struct {
	// Name identifies the backend in logs, metrics and component summaries.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is joined with every relative path.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the transport timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are default headers sent with every request, in order.
	Headers []Header `yaml:"headers" mapstructure:"headers" validate:"dive"`

	// BearerToken, when set, adds an Authorization: Bearer header.
	BearerToken string `yaml:"bearer_token" mapstructure:"bearer_token"`

	// JSONContentType adds a default Content-Type: application/json header.
	JSONContentType bool `yaml:"json_content_type" mapstructure:"json_content_type"`

	// TLS configures the transport's TLS settings.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// HTTP2 configures the net/http transport for HTTP/2.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	// Transport selects the transport collaborator. Defaults to net/http.
	Transport TransportKind `yaml:"transport" mapstructure:"transport" validate:"omitempty,oneof=net/http resty"`

	// QueryStyle selects the query string layout. Defaults to compact.
	QueryStyle QueryStyle `yaml:"query_style" mapstructure:"query_style" validate:"omitempty,oneof=compact legacy"`

	// RequestIDHeader, when set, carries a fresh UUID on every request.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`

	// DownloadDirMode is the permission used for parent directories created by Download.
	DownloadDirMode os.FileMode `yaml:"download_dir_mode" mapstructure:"download_dir_mode"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Transport == "" {
		c.Transport = TransportNetHTTP
	}
	if c.QueryStyle == "" {
		c.QueryStyle = QueryStyleCompact
	}
	if c.DownloadDirMode == 0 {
		c.DownloadDirMode = defaultDirMode
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("httpclient: %w", err)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
