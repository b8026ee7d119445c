package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelectCommand verifies the winner is highlighted and rejections listed at
// any concurrency.
func TestSelectCommand(t *testing.T) {
	cycle := writeFile(t, "cycle.yaml", workedCycle)

	for _, concurrency := range []string{"1", "4"} {
		t.Run("concurrency "+concurrency, func(t *testing.T) {
			out, err := run(t, "select", "--cycle", cycle, "--concurrency", concurrency)
			require.NoError(t, err)

			assert.Contains(t, out, "Selection ")
			assert.Contains(t, out, "candidates: 4  rejected: 1")
			assert.Regexp(t, `★ reference\s+1\.0000`, out)
			assert.Regexp(t, `✗ double-placed\s+rejected`, out)
		})
	}
}

// TestSelectCommand_Metrics verifies --metrics reports selection state.
func TestSelectCommand_Metrics(t *testing.T) {
	cycle := writeFile(t, "cycle.yaml", workedCycle)

	out, err := run(t, "select", "--cycle", cycle, "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "teamform_selection_rejections_total 1")
	assert.Contains(t, out, "teamform_state{metric=selection_best_score} 1")
	assert.Contains(t, out, "teamform_state{metric=selection_candidates} 4")
	assert.Contains(t, out, "teamform_operation_duration_seconds{operation=select} count=1")
}

// TestSelectCommand_NoValidPlan verifies that a batch where every plan is
// rejected fails the command.
func TestSelectCommand_NoValidPlan(t *testing.T) {
	cycle := writeFile(t, "cycle.yaml", `
pool:
  goals:
    - {id: g1, recommended_team_size: 2}
plans:
  - teams:
      - {goal_id: g1, team_size: 2, participant_ids: [x, x]}
  - teams:
      - {goal_id: nope, team_size: 1, participant_ids: [y]}
`)

	_, err := run(t, "select", "--cycle", cycle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 candidates rejected")
}
