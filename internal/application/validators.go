package application

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/ports"
)

// objectiveIDPattern admits identifiers that are safe as metric label
// values and YAML keys.
var objectiveIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// newConfigValidator returns a validator with the custom tags used by
// AppraiserConfig registered.
func newConfigValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	return v, nil
}

// registerCustomValidators registers the semver and objectiveid tags.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	if err := v.RegisterValidation("objectiveid", validateObjectiveID); err != nil {
		return fmt.Errorf("failed to register objectiveid validator: %w", err)
	}
	return nil
}

// validateSemver validates that a string follows semantic versioning
// format (X.Y.Z where X, Y, Z are non-negative integers).
func validateSemver(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var major, minor, patch int
	n, err := fmt.Sscanf(value, "%d.%d.%d", &major, &minor, &patch)
	return err == nil && n == 3 && major >= 0 && minor >= 0 && patch >= 0
}

// validateObjectiveID checks an objective id against objectiveIDPattern.
func validateObjectiveID(fl validator.FieldLevel) bool {
	return objectiveIDPattern.MatchString(fl.Field().String())
}

// validateSemantics performs the checks struct tags cannot express:
// unique ids, registered types, mapping-shaped parameters and a positive
// weight sum.
func validateSemantics(cfg *AppraiserConfig, registry ports.ObjectiveRegistry) error {
	supported := registry.SupportedTypes()
	ids := make(map[string]struct{}, len(cfg.Objectives))
	var total float64

	for _, oc := range cfg.Objectives {
		if _, dup := ids[oc.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateObjective, oc.ID)
		}
		ids[oc.ID] = struct{}{}

		if !slices.Contains(supported, oc.Type) {
			return fmt.Errorf("objective %s: %w: %s", oc.ID, ports.ErrUnknownObjectiveType, oc.Type)
		}

		if _, err := decodeParameters(oc.Parameters); err != nil {
			return fmt.Errorf("objective %s: %w", oc.ID, err)
		}

		total += oc.EffectiveWeight()
	}

	if total <= 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	return nil
}

// decodeParameters converts a parameters node into the map handed to
// objective factories. An absent or null node yields a nil map.
func decodeParameters(node yaml.Node) (map[string]any, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parameters must be a mapping")
	}

	var params map[string]any
	if err := node.Decode(&params); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return params, nil
}
