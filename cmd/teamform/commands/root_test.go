package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workedCycle = `
pool:
  votes:
    - {participant_id: A0, ranked_goal_ids: [g1, g2]}
    - {participant_id: p0, ranked_goal_ids: [g1, g2]}
    - {participant_id: p1, ranked_goal_ids: [g1, g2]}
    - {participant_id: A1, ranked_goal_ids: [g2, g1]}
    - {participant_id: p2, ranked_goal_ids: [g2, g2]}
    - {participant_id: p3, ranked_goal_ids: [g2, g1]}
    - {participant_id: p4, ranked_goal_ids: [g2, g1]}
    - {participant_id: p5, ranked_goal_ids: [g2, g1]}
  goals:
    - {id: g1, recommended_team_size: 3}
    - {id: g2, recommended_team_size: 3}
  advanced:
    - {participant_id: A0}
    - {participant_id: A1, max_teams: 1}
plans:
  - id: unranked
    teams:
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [A0, p0, p1]}
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [p2, p3, p4]}
      - {goal_id: g2, team_size: 3, matches_recommended_size: true, participant_ids: [A1, p5, n0]}
  - id: reference
    teams:
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [A0, p0, p1]}
      - {goal_id: g2, team_size: 3, matches_recommended_size: true, participant_ids: [A1, p2, p5]}
      - {goal_id: g2, team_size: 3, matches_recommended_size: true, participant_ids: [p3, p4, n0]}
  - id: second-choice
    teams:
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [A0, p0, p1]}
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [p3, p4, n0]}
      - {goal_id: g2, team_size: 3, matches_recommended_size: true, participant_ids: [A1, p2, p5]}
  - id: double-placed
    teams:
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [A0, p0, p1]}
      - {goal_id: g1, team_size: 3, matches_recommended_size: true, participant_ids: [A0, p3, p4]}
      - {goal_id: g2, team_size: 3, matches_recommended_size: true, participant_ids: [A1, p2, p5]}
`

// writeFile stores content under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes a fresh command tree with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// TestRootCommand_ShowsHelpWhenNoSubcommand verifies the root command prints
// help listing every subcommand.
func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "score")
	assert.Contains(t, out, "select")
	assert.Contains(t, out, "generate")
}

// TestRootCommand_RejectsUnknownFlags verifies unknown flags are an error.
func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, err := run(t, "--unknown-flag", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

// TestRootCommand_LogFormat verifies the supported log encodings and rejects
// others.
func TestRootCommand_LogFormat(t *testing.T) {
	cycle := writeFile(t, "cycle.yaml", workedCycle)

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "console", format: "console"},
		{name: "json", format: "json"},
		{name: "unsupported", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "score", "--cycle", cycle, "--log-format", tt.format, "-vv")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported log format")
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestSetVersionInfo verifies --version reports the build information.
func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	t.Cleanup(func() { versionString = "dev" })

	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3 (commit: abc, built: today)")
}
