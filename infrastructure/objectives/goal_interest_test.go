package objectives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/testutils"
)

// TestGoalInterestObjective_Evaluate verifies the share of teams on goals
// somebody ranked.
func TestGoalInterestObjective_Evaluate(t *testing.T) {
	goals := append(testutils.WorkedExampleGoals(), domain.Goal{ID: "g3", RecommendedTeamSize: 3})
	pool := testutils.MustPool(t, testutils.WorkedExampleVotes(), goals, testutils.WorkedExampleAdvanced())

	o, err := NewGoalInterestObjective("interest")
	require.NoError(t, err)

	assert.Equal(t, 1.0, o.Evaluate(pool, testutils.ReferencePlan()))
	assert.Equal(t, 1.0, o.Evaluate(pool, &domain.Plan{}))

	unwanted := &domain.Plan{Teams: []domain.Team{
		testutils.NewTeam("g1", true, "A0", "p0", "p1"),
		testutils.NewTeam("g3", true, "A1", "p2", "p5"),
	}}
	assert.Equal(t, 0.5, o.Evaluate(pool, unwanted))
}

// TestNewGoalInterestFromConfig verifies the factory takes no parameters.
func TestNewGoalInterestFromConfig(t *testing.T) {
	obj, err := NewGoalInterestFromConfig("interest", nil)
	require.NoError(t, err)
	assert.Equal(t, "interest", obj.Name())
	assert.NoError(t, obj.Validate())

	_, err = NewGoalInterestFromConfig("interest", map[string]any{"threshold": 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGoalInterestFromConfig("", nil)
	assert.ErrorIs(t, err, ErrEmptyObjectiveName)
}
