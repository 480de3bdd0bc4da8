// Package security provides the TLS settings used by outbound transports.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/path/to/ca.pem",
//	    CertFile:   "/path/to/cert.pem",
//	    KeyFile:    "/path/to/key.pem",
//	    MinVersion: security.TLSVersion13,
//	}
//
//	tlsConfig, err := cfg.Build()
//
// BuildFS reads the certificate files through an afero.Fs instead of the
// OS filesystem.
package security
