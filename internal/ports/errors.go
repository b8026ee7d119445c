package ports

import (
	"errors"
	"fmt"
)

// Common errors raised at the port boundary.
var (
	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrUnknownObjectiveType indicates a registry lookup for an
	// unregistered objective type.
	ErrUnknownObjectiveType = errors.New("unknown objective type")
)

// ConfigError represents an error from configuration operations.
type ConfigError struct {
	// ConfigKey is the configuration key that was involved in the failed
	// operation.
	ConfigKey string

	// Err is the underlying error that caused the configuration operation
	// to fail.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: key=%s, err=%v", e.ConfigKey, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a new ConfigError with the given details.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		ConfigKey: key,
		Err:       err,
	}
}

// ObjectiveError reports an objective that misbehaved during evaluation,
// such as returning a value outside [0, 1].
type ObjectiveError struct {
	// Objective is the name of the offending objective.
	Objective string

	// Value is the raw value the objective returned.
	Value float64

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for ObjectiveError.
func (e *ObjectiveError) Error() string {
	return fmt.Sprintf("objective error: objective=%s, value=%v, err=%v", e.Objective, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ObjectiveError) Unwrap() error { return e.Err }

// NewObjectiveError creates a new ObjectiveError with the given details.
func NewObjectiveError(objective string, value float64, err error) *ObjectiveError {
	return &ObjectiveError{
		Objective: objective,
		Value:     value,
		Err:       err,
	}
}
