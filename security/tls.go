package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"

	"github.com/spf13/afero"
)

// TLS protocol versions accepted by TLSConfig.MinVersion.
const (
	TLSVersion12 = "1.2"
	TLSVersion13 = "1.3"
)

// TLSConfig holds client-side TLS settings for outbound connections.
type TLSConfig struct {
	// SkipVerify disables server certificate verification.
	// Not recommended for production.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile is the path to the CA certificate file for verifying the server.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile is the path to the client TLS certificate file (for mTLS).
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`

	// KeyFile is the path to the client TLS key file (for mTLS).
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`

	// ServerName overrides the server name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is the minimum TLS version, "1.2" or "1.3". Defaults to 1.2.
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// Build creates a *tls.Config, reading certificate files from the OS filesystem.
// Returns nil if no TLS settings are configured.
func (c *TLSConfig) Build() (*tls.Config, error) {
	return c.BuildFS(afero.NewOsFs())
}

// BuildFS is Build with certificate files read from fs.
func (c *TLSConfig) BuildFS(fs afero.Fs) (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec // opt-in via config
		ServerName:         c.ServerName,
		MinVersion:         minVersion(c.MinVersion),
	}

	if err := c.loadCA(fs, cfg); err != nil {
		return nil, err
	}
	if err := c.loadClientCert(fs, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the TLS configuration is consistent.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile != "") != (c.KeyFile != "") {
		return fmt.Errorf("security/tls: both cert_file and key_file must be provided together")
	}
	switch c.MinVersion {
	case "", TLSVersion12, TLSVersion13:
	default:
		return fmt.Errorf("security/tls: min_version must be %q or %q (got: %s)", TLSVersion12, TLSVersion13, c.MinVersion)
	}
	return nil
}

// IsEnabled returns true if any TLS setting is configured.
func (c *TLSConfig) IsEnabled() bool {
	if c == nil {
		return false
	}
	return c.SkipVerify || c.CAFile != "" || c.CertFile != "" || c.ServerName != "" || c.MinVersion != ""
}

func minVersion(v string) uint16 {
	if v == TLSVersion13 {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

// loadCA loads the CA certificate into the TLS config.
func (c *TLSConfig) loadCA(fs afero.Fs, cfg *tls.Config) error {
	if c.CAFile == "" {
		return nil
	}
	ca, err := afero.ReadFile(fs, c.CAFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return fmt.Errorf("security/tls: failed to parse CA certificate")
	}
	cfg.RootCAs = pool
	return nil
}

// loadClientCert loads the client certificate and key into the TLS config.
func (c *TLSConfig) loadClientCert(fs afero.Fs, cfg *tls.Config) error {
	if c.CertFile == "" {
		return nil
	}
	certPEM, err := afero.ReadFile(fs, c.CertFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to read client certificate: %w", err)
	}
	keyPEM, err := afero.ReadFile(fs, c.KeyFile)
	if err != nil {
		return fmt.Errorf("security/tls: failed to read client key: %w", err)
	}
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return fmt.Errorf("security/tls: failed to load client certificate: %w", err)
	}
	cfg.Certificates = []tls.Certificate{cert}
	return nil
}
