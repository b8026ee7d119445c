package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestObjectiveConfig_EffectiveWeight verifies an omitted weight counts as 1.
func TestObjectiveConfig_EffectiveWeight(t *testing.T) {
	zero, three := 0.0, 3.0
	assert.Equal(t, 1.0, ObjectiveConfig{}.EffectiveWeight())
	assert.Equal(t, 0.0, ObjectiveConfig{Weight: &zero}.EffectiveWeight())
	assert.Equal(t, 3.0, ObjectiveConfig{Weight: &three}.EffectiveWeight())
}

// TestCustomValidators exercises the semver and objectiveid tags.
func TestCustomValidators(t *testing.T) {
	v, err := newConfigValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		tag   string
		value string
		valid bool
	}{
		{name: "semver", tag: "semver", value: "1.0.0", valid: true},
		{name: "semver two parts", tag: "semver", value: "1.0", valid: false},
		{name: "semver text", tag: "semver", value: "latest", valid: false},
		{name: "id", tag: "objectiveid", value: "vote_satisfaction", valid: true},
		{name: "id with hyphen", tag: "objectiveid", value: "votes-2", valid: true},
		{name: "id leading digit", tag: "objectiveid", value: "2votes", valid: false},
		{name: "id with space", tag: "objectiveid", value: "my votes", valid: false},
		{name: "id empty", tag: "objectiveid", value: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// TestDecodeParameters verifies parameter nodes decode to maps and that
// non-mapping nodes are rejected.
func TestDecodeParameters(t *testing.T) {
	params, err := decodeParameters(yaml.Node{})
	require.NoError(t, err)
	assert.Nil(t, params)

	var doc struct {
		Params yaml.Node `yaml:"params"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("params:\n  policy: co_placement\n"), &doc))
	params, err = decodeParameters(doc.Params)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"policy": "co_placement"}, params)

	require.NoError(t, yaml.Unmarshal([]byte("params: null\n"), &doc))
	params, err = decodeParameters(doc.Params)
	require.NoError(t, err)
	assert.Nil(t, params)

	require.NoError(t, yaml.Unmarshal([]byte("params: 3\n"), &doc))
	_, err = decodeParameters(doc.Params)
	assert.Error(t, err)
}

// TestDefaultAppraiserConfig_Validates verifies the default config passes
// validation.
func TestDefaultAppraiserConfig_Validates(t *testing.T) {
	v, err := newConfigValidator()
	require.NoError(t, err)
	assert.NoError(t, validateAppraiserConfig(v, DefaultAppraiserConfig(), NewDefaultObjectiveRegistry()))
}
