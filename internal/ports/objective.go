// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/ahrav/teamform/internal/domain"
)

// Objective is a single scoring rule measuring one dimension of plan
// quality. Objectives must be stateless apart from immutable configuration
// so they can be shared across goroutines.
type Objective interface {
	// Name returns a unique identifier for this objective.
	// The name labels the objective in appraisals, metrics, and config.
	Name() string

	// Evaluate scores plan against pool, returning a value in [0, 1] where
	// 1 fully satisfies the objective and 0 fully fails it.
	//
	// Evaluate is only called with a plan that already passed structural
	// validation, so implementations may assume every goal exists and no
	// participant is placed twice. It must be deterministic, independent
	// of call order, and must not modify either argument.
	Evaluate(pool *domain.Pool, plan *domain.Plan) float64

	// Validate checks if the objective is properly configured.
	// It is called once when an appraiser is built.
	Validate() error
}

// ObjectiveFactory is a function type that creates new Objective instances
// from an id and a decoded parameter map.
type ObjectiveFactory func(id string, params map[string]any) (Objective, error)

// ObjectiveRegistry creates objectives by type name. Custom objective types
// can be registered at runtime to extend the built-in set.
type ObjectiveRegistry interface {
	// CreateObjective builds an objective of the given type.
	CreateObjective(objectiveType, id string, params map[string]any) (Objective, error)

	// RegisterObjectiveFactory adds or replaces the factory for a type.
	RegisterObjectiveFactory(objectiveType string, factory ObjectiveFactory) error

	// SupportedTypes lists registered objective types in sorted order.
	SupportedTypes() []string
}

// PlanScorer produces an appraisal for a candidate plan. The appraiser
// implements it directly and observability middleware decorates it.
//
// The context carries request-scoped values such as loggers and trace
// spans; scoring itself never blocks.
type PlanScorer interface {
	Appraise(ctx context.Context, plan *domain.Plan) (*domain.Appraisal, error)
}

// PlanScorerFunc adapts a function to the PlanScorer interface.
type PlanScorerFunc func(ctx context.Context, plan *domain.Plan) (*domain.Appraisal, error)

// Appraise calls f(ctx, plan).
func (f PlanScorerFunc) Appraise(ctx context.Context, plan *domain.Plan) (*domain.Appraisal, error) {
	return f(ctx, plan)
}
