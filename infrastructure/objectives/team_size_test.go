package objectives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/teamform/internal/domain"
	"github.com/ahrav/teamform/internal/testutils"
)

// TestTeamSizeObjective_Evaluate verifies the fraction of conforming teams.
func TestTeamSizeObjective_Evaluate(t *testing.T) {
	pool := testutils.WorkedExamplePool(t)

	tests := []struct {
		name        string
		usePlanFlag bool
		plan        *domain.Plan
		want        float64
	}{
		{
			name: "all teams conform",
			plan: testutils.ReferencePlan(),
			want: 1,
		},
		{
			name: "one undersized team",
			plan: &domain.Plan{Teams: []domain.Team{
				testutils.NewTeam("g1", true, "A0", "p0", "p1"),
				testutils.NewTeam("g2", true, "A1", "p2", "p5"),
				testutils.NewTeam("g2", false, "p3", "p4"),
			}},
			want: 2.0 / 3.0,
		},
		{
			name: "no teams conform",
			plan: &domain.Plan{Teams: []domain.Team{
				testutils.NewTeam("g1", false, "A0"),
				testutils.NewTeam("g2", false, "A1", "p2", "p5", "p3"),
			}},
			want: 0,
		},
		{
			name:        "plan flag is trusted when enabled",
			usePlanFlag: true,
			plan: &domain.Plan{Teams: []domain.Team{
				testutils.NewTeam("g1", true, "A0"),
				testutils.NewTeam("g2", false, "A1", "p2", "p5"),
			}},
			want: 0,
		},
		{
			name: "plan flag is ignored by default",
			plan: &domain.Plan{Teams: []domain.Team{
				testutils.NewTeam("g1", true, "A0"),
				testutils.NewTeam("g2", false, "A1", "p2", "p5"),
			}},
			want: 0.5,
		},
		{
			name: "empty plan scores one",
			plan: &domain.Plan{},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewTeamSizeObjective("size", TeamSizeConfig{UsePlanFlag: tt.usePlanFlag})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, o.Evaluate(pool, tt.plan), 1e-12)
		})
	}
}

// TestTeamSizeObjective_UnknownGoal verifies a team on a goal missing from
// the pool never conforms when sizes are read from the pool.
func TestTeamSizeObjective_UnknownGoal(t *testing.T) {
	o, err := NewTeamSizeObjective("size", DefaultTeamSizeConfig())
	require.NoError(t, err)

	plan := &domain.Plan{Teams: []domain.Team{testutils.NewTeam("missing", true, "A0", "p0", "p1")}}
	assert.Equal(t, 0.0, o.Evaluate(testutils.WorkedExamplePool(t), plan))
}

// TestTeamSizeObjective_Config verifies use_plan_flag decoding and
// validation.
func TestTeamSizeObjective_Config(t *testing.T) {
	_, err := NewTeamSizeObjective("", DefaultTeamSizeConfig())
	assert.ErrorIs(t, err, ErrEmptyObjectiveName)

	o, err := NewTeamSizeObjective("size", DefaultTeamSizeConfig())
	require.NoError(t, err)
	assert.Equal(t, "size", o.Name())
	assert.NoError(t, o.Validate())

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("use_plan_flag: true"), &node))
	require.NoError(t, o.UnmarshalParameters(node))
	assert.True(t, o.config.UsePlanFlag)

	obj, err := NewTeamSizeFromConfig("size", map[string]any{"use_plan_flag": true})
	require.NoError(t, err)
	assert.True(t, obj.(*TeamSizeObjective).config.UsePlanFlag)

	_, err = NewTeamSizeFromConfig("size", map[string]any{"use_plan_flag": "sometimes"})
	assert.Error(t, err)
}
