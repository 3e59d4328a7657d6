package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every field the server cannot run without is
// set. The JWT secret is required everywhere; a signing key baked into the
// binary is not an option.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be set"}.Error())
	}
	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must be set"}.Error())
	}
	if cfg.DBHost == "" {
		errs = append(errs, ValidationError{Field: "DB_HOST", Message: "must be set"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{Field: "DB_NAME", Message: "must be set"}.Error())
	}
	if IsProduction() && cfg.DBPassword == "" {
		errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "must be set in production"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
