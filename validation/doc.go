// Package validation provides struct tag validation and programmatic
// validation with error collection. Both produce *errors.AppError values with
// code INVALID_INPUT and a "fields" detail.
//
// Field names are taken from the mapstructure, yaml or json tag, so errors
// name configuration keys:
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
//	}
//	err := validation.Validate(cfg) // "base_url: must be a valid URL"
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("path", path).OneOf("output", out, []string{"json", "yaml"})
//	if err := v.Validate(); err != nil { ... }
package validation
