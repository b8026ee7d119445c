package objectives

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/ports"
)

var _ ports.Objective = (*VoteSatisfactionObjective)(nil)

// VoteSatisfactionObjective rewards plans that place voters on goals they
// ranked highly.
//
// Each voter scores by the rank of the goal their team pursues. The top
// FullCreditRanks positions earn 1. Below that, satisfaction falls
// linearly and reaches 1/(n-k+1) at the last ranked position, so any ranked
// goal scores strictly above an unranked one, which earns 0. A voter left
// out of the plan also earns 0. Participants without a vote, or whose
// ranked list is empty, do not count.
//
// The objective value is the mean satisfaction across voters, summed in
// participant-id order so results do not depend on input ordering. A pool
// with no voters scores 1.
type VoteSatisfactionObjective struct {
	name   string
	config VoteSatisfactionConfig
}

// VoteSatisfactionConfig controls how ranks map to satisfaction.
type VoteSatisfactionConfig struct {
	// FullCreditRanks is how many leading ranked positions count as fully
	// satisfied. 1 rewards only the first choice; 2 treats a first and
	// second choice alike.
	FullCreditRanks int `yaml:"full_credit_ranks" json:"full_credit_ranks" validate:"min=1,max=100"`
}

// DefaultVoteSatisfactionConfig returns a config giving full credit to a
// voter's first and second choice.
func DefaultVoteSatisfactionConfig() VoteSatisfactionConfig {
	return VoteSatisfactionConfig{FullCreditRanks: 2}
}

// NewVoteSatisfactionObjective creates a VoteSatisfactionObjective with a
// validated configuration.
func NewVoteSatisfactionObjective(name string, config VoteSatisfactionConfig) (*VoteSatisfactionObjective, error) {
	if name == "" {
		return nil, ErrEmptyObjectiveName
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &VoteSatisfactionObjective{name: name, config: config}, nil
}

// Name returns the unique identifier for this objective instance.
func (o *VoteSatisfactionObjective) Name() string { return o.name }

// Evaluate returns the mean voter satisfaction for plan.
func (o *VoteSatisfactionObjective) Evaluate(pool *domain.Pool, plan *domain.Plan) float64 {
	placements := plan.Placements()

	var sum float64
	voters := 0
	for _, vote := range pool.Votes() {
		if len(vote.RankedGoalIDs) == 0 {
			continue
		}
		voters++

		teamIdx, placed := placements[vote.ParticipantID]
		if !placed {
			continue
		}
		sum += o.Satisfaction(vote, plan.Teams[teamIdx].GoalID)
	}

	if voters == 0 {
		return 1
	}
	return sum / float64(voters)
}

// Satisfaction scores a single voter placed on goalID.
func (o *VoteSatisfactionObjective) Satisfaction(vote domain.Vote, goalID string) float64 {
	rank := vote.Rank(goalID)
	if rank < 0 {
		return 0
	}

	k := o.config.FullCreditRanks
	if rank < k {
		return 1
	}
	n := len(vote.RankedGoalIDs)
	return 1 - float64(rank-k+1)/float64(n-k+1)
}

// Validate verifies the objective configuration.
func (o *VoteSatisfactionObjective) Validate() error {
	if err := validateConfig(o.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters decodes YAML parameters over the current config.
// The configuration is unchanged on error.
func (o *VoteSatisfactionObjective) UnmarshalParameters(params yaml.Node) error {
	cfg := o.config
	if err := decodeNode(params, &cfg); err != nil {
		return err
	}
	o.config = cfg
	return nil
}

// NewVoteSatisfactionFromConfig is the registry factory for
// vote_satisfaction objectives.
func NewVoteSatisfactionFromConfig(id string, params map[string]any) (ports.Objective, error) {
	cfg := DefaultVoteSatisfactionConfig()
	if err := decodeParams(params, &cfg); err != nil {
		return nil, err
	}
	return NewVoteSatisfactionObjective(id, cfg)
}
