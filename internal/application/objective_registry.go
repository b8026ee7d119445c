package application

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ahrav/teamform/infrastructure/objectives"
	"github.com/ahrav/teamform/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.ObjectiveRegistry = (*DefaultObjectiveRegistry)(nil)

// DefaultObjectiveRegistry implements ports.ObjectiveRegistry with the
// built-in objective types pre-registered. Custom types may be added at
// runtime and are safe to register concurrently with lookups.
type DefaultObjectiveRegistry struct {
	// factories maps objective type strings to their factory functions.
	factories map[string]ports.ObjectiveFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultObjectiveRegistry creates a registry holding the
// vote_satisfaction, team_size, advanced_distribution, and goal_interest
// factories.
func NewDefaultObjectiveRegistry() *DefaultObjectiveRegistry {
	r := &DefaultObjectiveRegistry{factories: make(map[string]ports.ObjectiveFactory)}
	r.registerBuiltinFactories()
	return r
}

func (r *DefaultObjectiveRegistry) registerBuiltinFactories() {
	r.factories[objectives.TypeVoteSatisfaction] = objectives.NewVoteSatisfactionFromConfig
	r.factories[objectives.TypeTeamSize] = objectives.NewTeamSizeFromConfig
	r.factories[objectives.TypeAdvancedDistribution] = objectives.NewAdvancedDistributionFromConfig
	r.factories[objectives.TypeGoalInterest] = objectives.NewGoalInterestFromConfig
}

// CreateObjective builds an objective of objectiveType named id.
// It returns an error wrapping ports.ErrUnknownObjectiveType when no
// factory is registered for the type.
func (r *DefaultObjectiveRegistry) CreateObjective(
	objectiveType string,
	id string,
	params map[string]any,
) (ports.Objective, error) {
	r.mu.RLock()
	factory, exists := r.factories[objectiveType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ports.ErrUnknownObjectiveType, objectiveType)
	}

	if id == "" {
		return nil, fmt.Errorf("objective ID cannot be empty")
	}

	obj, err := factory(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create objective %s of type %s: %w", id, objectiveType, err)
	}

	return obj, nil
}

// RegisterObjectiveFactory registers or replaces the factory for a type.
func (r *DefaultObjectiveRegistry) RegisterObjectiveFactory(
	objectiveType string,
	factory ports.ObjectiveFactory,
) error {
	if objectiveType == "" {
		return fmt.Errorf("objective type cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[objectiveType] = factory
	return nil
}

// SupportedTypes returns every registered objective type in sorted order.
func (r *DefaultObjectiveRegistry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.Sort(types)

	return types
}
