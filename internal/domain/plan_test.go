package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPlan_SeatsAndPlacements verifies seat totals and participant to team
// mapping.
func TestPlan_SeatsAndPlacements(t *testing.T) {
	plan := &Plan{
		Teams: []Team{
			{GoalID: "g1", TeamSize: 2, ParticipantIDs: []string{"a", "b"}},
			{GoalID: "g2", TeamSize: 3, ParticipantIDs: []string{"c", "d", "e"}},
		},
	}

	assert.Equal(t, 5, plan.Seats())
	assert.Equal(t, map[string]int{"a": 0, "b": 0, "c": 1, "d": 1, "e": 1}, plan.Placements())
}

// TestPlan_Empty verifies an empty plan has no seats or placements.
func TestPlan_Empty(t *testing.T) {
	plan := &Plan{}
	assert.Zero(t, plan.Seats())
	assert.Empty(t, plan.Placements())
}

// TestAppraisal_ObjectiveScore verifies lookup of an objective's score by
// name.
func TestAppraisal_ObjectiveScore(t *testing.T) {
	a := &Appraisal{
		Score: 0.75,
		Objectives: []ObjectiveScore{
			{Objective: "votes", Weight: 1, Score: 0.5},
			{Objective: "sizes", Weight: 1, Score: 1},
		},
	}

	got, ok := a.ObjectiveScore("votes")
	assert.True(t, ok)
	assert.Equal(t, 0.5, got)

	_, ok = a.ObjectiveScore("missing")
	assert.False(t, ok)
}
