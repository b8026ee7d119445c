// Package objectives provides the built-in scoring rules that implement
// the ports.Objective interface for the team formation engine.
package objectives

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Registered type names of the built-in objectives.
const (
	TypeVoteSatisfaction     = "vote_satisfaction"
	TypeTeamSize             = "team_size"
	TypeAdvancedDistribution = "advanced_distribution"
	TypeGoalInterest         = "goal_interest"
)

// Common errors returned by objective constructors.
var (
	// ErrEmptyObjectiveName is returned when attempting to create an
	// objective with an empty name.
	ErrEmptyObjectiveName = errors.New("objective name cannot be empty")

	// ErrInvalidConfig is returned when an objective configuration fails
	// validation.
	ErrInvalidConfig = errors.New("invalid objective configuration")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// validateConfig runs struct-tag validation and wraps failures.
func validateConfig(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// decodeParams overlays a generic parameter map onto cfg, which must be a
// pointer already holding defaults. The map is round-tripped through YAML so
// the yaml struct tags govern field names, and unknown keys are rejected.
func decodeParams(params map[string]any, cfg any) error {
	if len(params) == 0 {
		return nil
	}
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return strictDecode(data, cfg)
}

// decodeNode decodes a YAML node onto cfg and validates the result.
// Unknown keys are rejected.
func decodeNode(params yaml.Node, cfg any) error {
	if params.Kind == 0 {
		return validateConfig(cfg)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	if err := encoder.Encode(&params); err != nil {
		return fmt.Errorf("failed to encode YAML node: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close YAML encoder: %w", err)
	}
	if err := strictDecode(buf.Bytes(), cfg); err != nil {
		return err
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	return nil
}

// strictDecode decodes YAML onto cfg with KnownFields to catch typos.
func strictDecode(data []byte, cfg any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("%w: failed to decode parameters (check for typos): %w", ErrInvalidConfig, err)
	}
	return nil
}

// ratio returns num/den, or 1 when den is zero.
func ratio(num, den int) float64 {
	if den == 0 {
		return 1
	}
	return float64(num) / float64(den)
}
