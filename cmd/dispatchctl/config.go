package main

import (
	"fmt"

	"github.com/kbukum/dispatch/config"
	"github.com/kbukum/dispatch/httpclient"
	"github.com/kbukum/dispatch/observability"
	"github.com/kbukum/dispatch/validation"
)

const serviceName = "dispatchctl"

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the dispatchctl configuration file layout.
//
//	name: dispatchctl
//	environment: production
//	output: yaml
//	logging:
//	  level: warn
//	http:
//	  base_url: https://api.example.com
//	  timeout: 10s
//	  headers:
//	    - name: Accept
//	      value: application/json
//	observability:
//	  enabled: true
//	  endpoint: otel-collector:4318
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	HTTP          httpclient.Config    `yaml:"http" mapstructure:"http"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Output        string               `yaml:"output" mapstructure:"output"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Environment == "" {
		c.Environment = "production"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Output == "" {
		c.Output = OutputJSON
	}
	if c.HTTP.Name == "" {
		c.HTTP.Name = "http"
	}
	c.HTTP.ApplyDefaults()
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.New().OneOf("output", c.Output, []string{OutputJSON, OutputYAML}).Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := validation.Validate(c.Observability); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}
