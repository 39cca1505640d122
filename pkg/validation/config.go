package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingValue is returned when a required configuration value is empty
var ErrMissingValue = errors.New("required configuration value not set")

// ConfigValidator validates configuration values read from the environment
type ConfigValidator struct{}

// NewConfigValidator creates a new ConfigValidator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateRequired fails when value is empty
func (v *ConfigValidator) ValidateRequired(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingValue, key)
	}
	return nil
}

// ValidateVersion only rejects an empty flag; any other value is a usable version
func (v *ConfigValidator) ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return errors.New("agent version cannot be empty")
	}
	return nil
}

// ValidateDatabaseURL accepts postgres URLs and key=value DSNs
func (v *ConfigValidator) ValidateDatabaseURL(dsn string) error {
	if dsn == "" {
		return errors.New("database connection string cannot be empty")
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	if strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname=") {
		return nil
	}

	return errors.New("database connection string must be a postgres:// URL or a key=value DSN")
}
