package objectives

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

var _ ports.Objective = (*AdvancedDistributionObjective)(nil)

// ViolationPolicy names the predicate that decides when a capped advanced
// participant is considered overloaded.
type ViolationPolicy string

// Supported violation policies.
const (
	// PolicyRedundantGoal flags a capped participant that shares its team
	// with another advanced participant while more teams pursuing the same
	// goal hold advanced participants than the cap allows.
	PolicyRedundantGoal ViolationPolicy = "redundant_goal"

	// PolicyCoPlacement flags a capped participant that shares its team
	// with any other advanced participant.
	PolicyCoPlacement ViolationPolicy = "co_placement"
)

// AdvancedDistributionObjective discourages concentrating constrained
// advanced participants and rewards spreading them across teams.
//
// The value is 1 - violations/max(1, placed), where placed counts the
// advanced participants present in the plan and each contributes at most
// one violation. Participants without an explicit cap never violate, and
// a plan without advanced participants scores 1.
type AdvancedDistributionObjective struct {
	name   string
	config AdvancedDistributionConfig
}

// AdvancedDistributionConfig selects the violation predicate.
type AdvancedDistributionConfig struct {
	// Policy is the violation predicate to apply.
	Policy ViolationPolicy `yaml:"policy" json:"policy" validate:"required,oneof=redundant_goal co_placement"`
}

// DefaultAdvancedDistributionConfig uses the redundant goal predicate.
func DefaultAdvancedDistributionConfig() AdvancedDistributionConfig {
	return AdvancedDistributionConfig{Policy: PolicyRedundantGoal}
}

// NewAdvancedDistributionObjective creates an AdvancedDistributionObjective
// with a validated configuration.
func NewAdvancedDistributionObjective(
	name string,
	config AdvancedDistributionConfig,
) (*AdvancedDistributionObjective, error) {
	if name == "" {
		return nil, ErrEmptyObjectiveName
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &AdvancedDistributionObjective{name: name, config: config}, nil
}

// Name returns the unique identifier for this objective instance.
func (o *AdvancedDistributionObjective) Name() string { return o.name }

// Evaluate returns the share of placed advanced participants that are not
// in violation.
func (o *AdvancedDistributionObjective) Evaluate(pool *domain.Pool, plan *domain.Plan) float64 {
	placed, violations := o.Violations(pool, plan)
	return 1 - float64(violations)/float64(max(1, placed))
}

// Violations returns how many advanced participants the plan places and
// how many of them violate the configured policy.
func (o *AdvancedDistributionObjective) Violations(pool *domain.Pool, plan *domain.Plan) (placed, violations int) {
	if len(pool.AdvancedParticipants()) == 0 {
		return 0, 0
	}

	// Advanced members per team, and per goal the number of teams that
	// hold at least one advanced member.
	advPerTeam := make([]int, len(plan.Teams))
	anchoredTeams := make(map[string]int)
	for i, team := range plan.Teams {
		for _, id := range team.ParticipantIDs {
			if pool.IsAdvanced(id) {
				advPerTeam[i]++
			}
		}
		if advPerTeam[i] > 0 {
			anchoredTeams[team.GoalID]++
		}
	}

	placements := plan.Placements()
	for _, adv := range pool.AdvancedParticipants() {
		teamIdx, ok := placements[adv.ParticipantID]
		if !ok {
			continue
		}
		placed++

		if !adv.Capped() || advPerTeam[teamIdx] < 2 {
			continue
		}

		switch o.config.Policy {
		case PolicyCoPlacement:
			violations++
		case PolicyRedundantGoal:
			if anchoredTeams[plan.Teams[teamIdx].GoalID] > adv.MaxTeams {
				violations++
			}
		}
	}

	return placed, violations
}

// Validate verifies the objective configuration.
func (o *AdvancedDistributionObjective) Validate() error {
	if err := validateConfig(o.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters decodes YAML parameters over the current config.
// The configuration is unchanged on error.
func (o *AdvancedDistributionObjective) UnmarshalParameters(params yaml.Node) error {
	cfg := o.config
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	o.config = cfg
	return nil
}

// NewAdvancedDistributionFromConfig is the registry factory for
// advanced_distribution objectives.
func NewAdvancedDistributionFromConfig(id string, params map[string]any) (ports.Objective, error) {
	cfg := DefaultAdvancedDistributionConfig()
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	return NewAdvancedDistributionObjective(id, cfg)
}
