package objectives

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

var _ ports.Objective = (*TeamSizeObjective)(nil)

// TeamSizeObjective scores the fraction of teams whose size matches the
// recommended size of their goal.
type TeamSizeObjective struct {
	name   string
	config TeamSizeConfig
}

// TeamSizeConfig selects where conformance is read from.
type TeamSizeConfig struct {
	// UsePlanFlag trusts each team's MatchesRecommendedSize flag instead
	// of comparing TeamSize with the goal in the pool.
	UsePlanFlag bool `yaml:"use_plan_flag" json:"use_plan_flag"`
}

// DefaultTeamSizeConfig compares team sizes against the pool.
func DefaultTeamSizeConfig() TeamSizeConfig { return TeamSizeConfig{} }

// NewTeamSizeObjective creates a TeamSizeObjective.
func NewTeamSizeObjective(name string, config TeamSizeConfig) (*TeamSizeObjective, error) {
	if name == "" {
		return nil, ErrEmptyObjectiveName
	}
	return &TeamSizeObjective{name: name, config: config}, nil
}

// Name returns the unique identifier for this objective instance.
func (o *TeamSizeObjective) Name() string { return o.name }

// Evaluate returns conforming teams divided by total teams.
func (o *TeamSizeObjective) Evaluate(pool *domain.Pool, plan *domain.Plan) float64 {
	conforming := 0
	for _, team := range plan.Teams {
		if o.conforms(pool, team) {
			conforming++
		}
	}
	return ratio(conforming, len(plan.Teams))
}

func (o *TeamSizeObjective) conforms(pool *domain.Pool, team domain.Team) bool {
	if o.config.UsePlanFlag {
		return team.MatchesRecommendedSize
	}
	goal, ok := pool.Goal(team.GoalID)
	return ok && team.TeamSize == goal.RecommendedTeamSize
}

// Validate verifies the objective configuration.
func (o *TeamSizeObjective) Validate() error {
	if err := validateConfig(o.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters decodes YAML parameters over the current config.
func (o *TeamSizeObjective) UnmarshalParameters(params yaml.Node) error {
	cfg := o.config
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	o.config = cfg
	return nil
}

// NewTeamSizeFromConfig is the registry factory for team_size objectives.
func NewTeamSizeFromConfig(id string, params map[string]any) (ports.Objective, error) {
	cfg := DefaultTeamSizeConfig()
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	return NewTeamSizeObjective(id, cfg)
}
