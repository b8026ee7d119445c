package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/teamform/infrastructure/objectives"
	"github.com/ahrav/teamform/internal/ports"
	"github.com/ahrav/teamform/internal/testutils"
)

const validAppraiserYAML = `
version: "1.0.0"
strict_seat_count: true
objectives:
  - id: votes
    type: vote_satisfaction
    weight: 2
    parameters:
      full_credit_ranks: 2
  - id: size
    type: team_size
  - id: advanced
    type: advanced_distribution
    weight: 0.5
    parameters:
      policy: co_placement
`

// countingRegistry counts CreateObjective calls to observe caching.
type countingRegistry struct {
	*DefaultObjectiveRegistry
	mu      sync.Mutex
	creates int
}

func (r *countingRegistry) CreateObjective(typ, id string, params map[string]any) (ports.Objective, error) {
	r.mu.Lock()
	r.creates++
	r.mu.Unlock()
	return r.DefaultObjectiveRegistry.CreateObjective(typ, id, params)
}

func newTestLoader(t *testing.T) (*ConfigLoader, *countingRegistry) {
	t.Helper()
	reg := &countingRegistry{DefaultObjectiveRegistry: NewDefaultObjectiveRegistry()}
	cl, err := NewConfigLoader(reg)
	require.NoError(t, err)
	return cl, reg
}

// TestConfigLoader_LoadFromBytes verifies a full config compiles into weighted
// objectives in order.
func TestConfigLoader_LoadFromBytes(t *testing.T) {
	cl, _ := newTestLoader(t)

	set, err := cl.LoadFromBytes(context.Background(), []byte(validAppraiserYAML))
	require.NoError(t, err)

	assert.True(t, set.StrictSeatCount)
	assert.Len(t, set.Hash, 64)
	require.Len(t, set.Objectives, 3)

	assert.Equal(t, "votes", set.Objectives[0].Objective.Name())
	assert.Equal(t, 2.0, set.Objectives[0].Weight)
	assert.Equal(t, 1.0, set.Objectives[1].Weight, "omitted weight defaults to 1")
	assert.Equal(t, 0.5, set.Objectives[2].Weight)

	assert.IsType(t, &objectives.VoteSatisfactionObjective{}, set.Objectives[0].Objective)
	assert.IsType(t, &objectives.AdvancedDistributionObjective{}, set.Objectives[2].Objective)

	a, err := NewObjectiveAppraiser(testutils.WorkedExamplePool(t), set.Options()...)
	require.NoError(t, err)
	score, err := a.Score(testutils.SecondChoicePlan())
	require.NoError(t, err)
	// Votes count fully with two full credit ranks.
	assert.Equal(t, 1.0, score)
}

// TestConfigLoader_Errors verifies each class of invalid config is reported as
// a ConfigError.
func TestConfigLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown field",
			yaml:    "version: \"1.0.0\"\nobjectivez: []\n",
			wantMsg: "field objectivez not found",
		},
		{
			name:    "bad version",
			yaml:    "version: one\nobjectives:\n  - id: votes\n    type: vote_satisfaction\n",
			wantMsg: "semver",
		},
		{
			name:    "no objectives",
			yaml:    "version: \"1.0.0\"\nobjectives: []\n",
			wantMsg: "Objectives",
		},
		{
			name:    "invalid id",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: 9votes\n    type: vote_satisfaction\n",
			wantMsg: "objectiveid",
		},
		{
			name:    "negative weight",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: votes\n    type: vote_satisfaction\n    weight: -1\n",
			wantMsg: "gte",
		},
		{
			name:    "duplicate id",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: a\n    type: team_size\n  - id: a\n    type: vote_satisfaction\n",
			wantErr: ErrDuplicateObjective,
		},
		{
			name:    "unregistered type",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: karma\n    type: karma\n",
			wantErr: ports.ErrUnknownObjectiveType,
		},
		{
			name:    "zero weight sum",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: a\n    type: team_size\n    weight: 0\n",
			wantErr: ErrInvalidWeights,
		},
		{
			name:    "parameters not a mapping",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: a\n    type: team_size\n    parameters: [1, 2]\n",
			wantMsg: "parameters must be a mapping",
		},
		{
			name:    "misspelled parameter",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: votes\n    type: vote_satisfaction\n    parameters:\n      full_credit_rank: 1\n",
			wantErr: objectives.ErrInvalidConfig,
			wantMsg: "field full_credit_rank not found",
		},
		{
			name:    "invalid parameters",
			yaml:    "version: \"1.0.0\"\nobjectives:\n  - id: a\n    type: advanced_distribution\n    parameters:\n      policy: everywhere\n",
			wantErr: objectives.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl, _ := newTestLoader(t)
			_, err := cl.LoadFromBytes(context.Background(), []byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *ports.ConfigError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

// TestConfigLoader_Cache verifies equivalent configs share one compiled set
// until the cache is cleared.
func TestConfigLoader_Cache(t *testing.T) {
	cl, reg := newTestLoader(t)
	ctx := context.Background()

	first, err := cl.LoadFromBytes(ctx, []byte(validAppraiserYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, reg.creates)

	// Reformatted but equivalent YAML hits the same entry.
	reformatted := "# appraiser\n" + strings.ReplaceAll(validAppraiserYAML, `"1.0.0"`, `'1.0.0'`) + "\n\n"
	second, err := cl.LoadFromReader(ctx, strings.NewReader(reformatted))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 3, reg.creates)

	cl.ClearCache()
	third, err := cl.LoadFromBytes(ctx, []byte(validAppraiserYAML))
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.Hash, third.Hash)
	assert.Equal(t, 6, reg.creates)
}

// TestConfigLoader_ConcurrentLoads verifies concurrent loads of one config
// compile it once.
func TestConfigLoader_ConcurrentLoads(t *testing.T) {
	cl, reg := newTestLoader(t)

	var wg sync.WaitGroup
	sets := make([]*ObjectiveSet, 16)
	for i := range sets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := cl.LoadFromBytes(context.Background(), []byte(validAppraiserYAML))
			assert.NoError(t, err)
			sets[i] = set
		}()
	}
	wg.Wait()

	for _, set := range sets {
		assert.Same(t, sets[0], set)
	}
	assert.Equal(t, 3, reg.creates, "identical configs compile once")
}

// TestConfigLoader_LoadFromFile verifies loading from disk and the error for a
// missing file.
func TestConfigLoader_LoadFromFile(t *testing.T) {
	cl, _ := newTestLoader(t)

	path := filepath.Join(t.TempDir(), "appraiser.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validAppraiserYAML), 0o600))

	set, err := cl.LoadFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, set.Objectives, 3)

	_, err = cl.LoadFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	var cfgErr *ports.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

// TestConfigLoader_NilInputs verifies nil registries and configs are rejected.
func TestConfigLoader_NilInputs(t *testing.T) {
	_, err := NewConfigLoader(nil)
	assert.Error(t, err)

	cl, _ := newTestLoader(t)
	_, err = cl.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ports.ErrConfigNotFound)
}

// TestBuildObjectiveSet verifies uncached compilation and its errors.
func TestBuildObjectiveSet(t *testing.T) {
	set, err := BuildObjectiveSet(DefaultAppraiserConfig(), NewDefaultObjectiveRegistry())
	require.NoError(t, err)
	assert.Len(t, set.Objectives, 3)
	assert.False(t, set.StrictSeatCount)
	assert.Empty(t, set.Hash)
}
