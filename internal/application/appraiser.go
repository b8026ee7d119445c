// Package application holds the scoring engine that combines objectives
// into plan appraisals, together with its configuration loading and the
// selection loop.
package application

import (
	"context"
	"fmt"
	"math"

	"github.com/ahrav/teamform/infrastructure/objectives"
	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.PlanScorer = (*ObjectiveAppraiser)(nil)

// WeightedObjective pairs an objective with its non-negative weight.
type WeightedObjective struct {
	Objective ports.Objective
	Weight    float64
}

// ObjectiveAppraiser scores candidate plans against a fixed pool as the
// weighted mean of a set of objectives.
//
// Every plan is validated before any objective runs, so objectives only
// ever see structurally sound input. The appraiser holds no mutable state
// after construction and may be shared by any number of goroutines.
type ObjectiveAppraiser struct {
	pool            *domain.Pool
	objectives      []WeightedObjective
	weights         []float64
	aggregator      domain.Aggregator
	strictSeatCount bool
}

type appraiserOptions struct {
	objectives      []WeightedObjective
	objectivesSet   bool
	aggregator      domain.Aggregator
	strictSeatCount bool
}

// AppraiserOption configures an ObjectiveAppraiser.
type AppraiserOption func(*appraiserOptions)

// WithObjectives replaces the default objective set. Objectives are
// evaluated and reported in the order given.
func WithObjectives(objs ...WeightedObjective) AppraiserOption {
	return func(o *appraiserOptions) {
		o.objectives = objs
		o.objectivesSet = true
	}
}

// WithStrictSeatCount rejects plans whose non-zero SeatCount disagrees
// with the number of placed participants.
func WithStrictSeatCount() AppraiserOption {
	return func(o *appraiserOptions) { o.strictSeatCount = true }
}

// WithAggregator replaces the WeightedMean combination strategy.
func WithAggregator(agg domain.Aggregator) AppraiserOption {
	return func(o *appraiserOptions) { o.aggregator = agg }
}

// DefaultObjectives returns vote satisfaction, team size conformance and
// advanced participant distribution, each with weight 1 and default
// configuration.
func DefaultObjectives() ([]WeightedObjective, error) {
	votes, err := objectives.NewVoteSatisfactionObjective(
		objectives.TypeVoteSatisfaction, objectives.DefaultVoteSatisfactionConfig())
	if err != nil {
		return nil, err
	}
	size, err := objectives.NewTeamSizeObjective(
		objectives.TypeTeamSize, objectives.DefaultTeamSizeConfig())
	if err != nil {
		return nil, err
	}
	adv, err := objectives.NewAdvancedDistributionObjective(
		objectives.TypeAdvancedDistribution, objectives.DefaultAdvancedDistributionConfig())
	if err != nil {
		return nil, err
	}

	return []WeightedObjective{
		{Objective: votes, Weight: 1},
		{Objective: size, Weight: 1},
		{Objective: adv, Weight: 1},
	}, nil
}

// NewObjectiveAppraiser binds an appraiser to pool. Without WithObjectives
// the default objective set is used.
//
// Construction fails when the pool is nil, the objective set is empty,
// contains a nil or misconfigured objective or repeats a name, or when the
// weights are not all non-negative with a positive sum.
func NewObjectiveAppraiser(pool *domain.Pool, opts ...AppraiserOption) (*ObjectiveAppraiser, error) {
	if pool == nil {
		return nil, ErrNilPool
	}

	o := appraiserOptions{aggregator: WeightedMean{}}
	for _, opt := range opts {
		opt(&o)
	}

	objs := o.objectives
	if !o.objectivesSet {
		defaults, err := DefaultObjectives()
		if err != nil {
			return nil, fmt.Errorf("failed to build default objectives: %w", err)
		}
		objs = defaults
	}
	if len(objs) == 0 {
		return nil, ErrNoObjectives
	}
	if o.aggregator == nil {
		return nil, fmt.Errorf("aggregator cannot be nil")
	}

	names := make(map[string]struct{}, len(objs))
	weights := make([]float64, len(objs))
	var total float64
	for i, wo := range objs {
		if wo.Objective == nil {
			return nil, fmt.Errorf("objective %d is nil", i)
		}
		name := wo.Objective.Name()
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateObjective, name)
		}
		names[name] = struct{}{}

		if err := wo.Objective.Validate(); err != nil {
			return nil, fmt.Errorf("objective %s validation failed: %w", name, err)
		}
		if wo.Weight < 0 || math.IsNaN(wo.Weight) || math.IsInf(wo.Weight, 0) {
			return nil, fmt.Errorf("%w: objective %s has weight %v", ErrInvalidWeights, name, wo.Weight)
		}
		weights[i] = wo.Weight
		total += wo.Weight
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}

	return &ObjectiveAppraiser{
		pool:            pool,
		objectives:      append([]WeightedObjective(nil), objs...),
		weights:         weights,
		aggregator:      o.aggregator,
		strictSeatCount: o.strictSeatCount,
	}, nil
}

// NewObjectiveAppraiserFromConfig builds the objective set described by
// cfg through registry and binds it to pool.
func NewObjectiveAppraiserFromConfig(
	pool *domain.Pool,
	cfg *AppraiserConfig,
	registry ports.ObjectiveRegistry,
) (*ObjectiveAppraiser, error) {
	set, err := BuildObjectiveSet(cfg, registry)
	if err != nil {
		return nil, err
	}
	return NewObjectiveAppraiser(pool, set.Options()...)
}

// Pool returns the pool the appraiser is bound to.
func (a *ObjectiveAppraiser) Pool() *domain.Pool { return a.pool }

// Objectives returns a copy of the weighted objective set.
func (a *ObjectiveAppraiser) Objectives() []WeightedObjective {
	return append([]WeightedObjective(nil), a.objectives...)
}

// Score returns the combined score of plan in [0, 1].
//
// A plan violating a structural precondition yields a *domain.PlanError
// that satisfies errors.Is(err, domain.ErrPrecondition).
func (a *ObjectiveAppraiser) Score(plan *domain.Plan) (float64, error) {
	appraisal, err := a.appraise(plan)
	if err != nil {
		return 0, err
	}
	return appraisal.Score, nil
}

// Appraise returns the combined score of plan together with the
// per-objective breakdown. Scoring never blocks, so ctx is not consulted.
func (a *ObjectiveAppraiser) Appraise(_ context.Context, plan *domain.Plan) (*domain.Appraisal, error) {
	return a.appraise(plan)
}

func (a *ObjectiveAppraiser) appraise(plan *domain.Plan) (*domain.Appraisal, error) {
	if err := ValidatePlan(a.pool, plan, a.strictSeatCount); err != nil {
		return nil, err
	}

	scores := make([]float64, len(a.objectives))
	breakdown := make([]domain.ObjectiveScore, len(a.objectives))
	for i, wo := range a.objectives {
		v := wo.Objective.Evaluate(a.pool, plan)
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, ports.NewObjectiveError(wo.Objective.Name(), v, ErrInvalidObjectiveScore)
		}
		scores[i] = v
		breakdown[i] = domain.ObjectiveScore{
			Objective: wo.Objective.Name(),
			Weight:    wo.Weight,
			Score:     v,
		}
	}

	score, err := a.aggregator.Aggregate(scores, a.weights)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate objective scores: %w", err)
	}

	return &domain.Appraisal{
		PlanID:     plan.ID,
		Score:      score,
		Objectives: breakdown,
	}, nil
}
