package application

import (
	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/infrastructure/objectives"
)

// AppraiserConfig is the declarative form of an objective set. It is
// loaded from YAML by ConfigLoader or embedded in a cycle document.
//
//	version: "1.0.0"
//	strict_seat_count: false
//	objectives:
//	  - id: votes
//	    type: vote_satisfaction
//	    weight: 2
//	    parameters:
//	      full_credit_ranks: 1
type AppraiserConfig struct {
	// Version specifies the configuration schema version using semantic
	// versioning.
	Version string `yaml:"version" json:"version" validate:"required,semver"`
	// StrictSeatCount rejects plans whose SeatCount disagrees with the
	// number of placed participants.
	StrictSeatCount bool `yaml:"strict_seat_count" json:"strict_seat_count"`
	// Objectives lists the weighted objectives in evaluation order.
	Objectives []ObjectiveConfig `yaml:"objectives" json:"objectives" validate:"required,min=1,max=32,dive"`
}

// ObjectiveConfig describes one weighted objective.
type ObjectiveConfig struct {
	// ID names the objective in appraisals and metrics and must be unique
	// within the config.
	ID string `yaml:"id" json:"id" validate:"required,objectiveid"`
	// Type selects the registered objective factory.
	Type string `yaml:"type" json:"type" validate:"required,min=1,max=64"`
	// Weight is the objective's share of the combined score. It defaults
	// to 1 when omitted; 0 keeps the objective in the breakdown without
	// affecting the score.
	Weight *float64 `yaml:"weight,omitempty" json:"weight,omitempty" validate:"omitempty,gte=0,lte=1000"`
	// Parameters contains type-specific configuration decoded by the
	// objective factory.
	Parameters yaml.Node `yaml:"parameters,omitempty" json:"-"`
}

// EffectiveWeight returns Weight, or 1 when it was omitted.
func (c ObjectiveConfig) EffectiveWeight() float64 {
	if c.Weight == nil {
		return 1
	}
	return *c.Weight
}

// DefaultAppraiserConfig returns the config equivalent of
// DefaultObjectives.
func DefaultAppraiserConfig() *AppraiserConfig {
	return &AppraiserConfig{
		Version: "1.0.0",
		Objectives: []ObjectiveConfig{
			{ID: objectives.TypeVoteSatisfaction, Type: objectives.TypeVoteSatisfaction},
			{ID: objectives.TypeTeamSize, Type: objectives.TypeTeamSize},
			{ID: objectives.TypeAdvancedDistribution, Type: objectives.TypeAdvancedDistribution},
		},
	}
}
