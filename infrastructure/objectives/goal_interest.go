package objectives

import (
	"fmt"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

var _ ports.Objective = (*GoalInterestObjective)(nil)

// GoalInterestObjective scores the fraction of teams pursuing a goal that
// at least one voter in the pool ranked. It penalises staffing goals
// nobody asked for and is not part of the default objective set.
type GoalInterestObjective struct {
	name string
}

// NewGoalInterestObjective creates a GoalInterestObjective.
func NewGoalInterestObjective(name string) (*GoalInterestObjective, error) {
	if name == "" {
		return nil, ErrEmptyObjectiveName
	}
	return &GoalInterestObjective{name: name}, nil
}

// Name returns the unique identifier for this objective instance.
func (o *GoalInterestObjective) Name() string { return o.name }

// Evaluate returns teams on ranked goals divided by total teams.
func (o *GoalInterestObjective) Evaluate(pool *domain.Pool, plan *domain.Plan) float64 {
	wanted := 0
	for _, team := range plan.Teams {
		if pool.HasInterest(team.GoalID) {
			wanted++
		}
	}
	return ratio(wanted, len(plan.Teams))
}

// Validate always succeeds; the objective has no configuration.
func (o *GoalInterestObjective) Validate() error { return nil }

// NewGoalInterestFromConfig is the registry factory for goal_interest
// objectives. It accepts no parameters.
func NewGoalInterestFromConfig(id string, params map[string]any) (ports.Objective, error) {
	if len(params) > 0 {
		return nil, fmt.Errorf("%w: goal_interest takes no parameters", ErrInvalidConfig)
	}
	return NewGoalInterestObjective(id)
}
