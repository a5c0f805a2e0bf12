package config

import (
	"fmt"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrMissingServerAddress indicates server.address is empty.
	ErrMissingServerAddress = errors.New("server.address is required")

	// ErrInvalidServerPort indicates server.port is outside [1, 65535].
	ErrInvalidServerPort = errors.New("server.port must be between 1 and 65535")

	// ErrInvalidTimeout indicates registration.timeout is not positive.
	ErrInvalidTimeout = errors.New("registration.timeout must be positive")

	// ErrMissingDocument indicates document is empty.
	ErrMissingDocument = errors.New("document path is required")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Server.Address == "" {
		errs = append(errs, ErrMissingServerAddress)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, &FieldError{
			Field: "server.port",
			Value: cfg.Server.Port,
			Err:   ErrInvalidServerPort,
		})
	}
	if cfg.Registration.Timeout <= 0 {
		errs = append(errs, &FieldError{
			Field: "registration.timeout",
			Value: cfg.Registration.Timeout,
			Err:   ErrInvalidTimeout,
		})
	}
	if cfg.Document == "" {
		errs = append(errs, ErrMissingDocument)
	}

	return errs
}

// FieldError represents an invalid value for a specific field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: got %v", e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
