package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario next to an empty project file and returns
// its path.
func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.json"), []byte(`{"version":"1","languages":[],"parts_of_speech":[]}`), 0644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "voicing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "voicing", scenario.Name)
	assert.Equal(t, filepath.Join("testdata", "projects", "voicing.json"), scenario.Project)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, ActionDerive, scenario.Steps[0].Action)
	assert.Equal(t, "Proto", scenario.Steps[0].Ancestor)
	assert.Equal(t, 1, scenario.Steps[0].Expect.Result["fused"])
	require.Len(t, scenario.Assertions, 5)
	require.NotNil(t, scenario.Assertions[0].Word)
	assert.Equal(t, 0, *scenario.Assertions[0].Word)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "misspelled assertions"
project: project.json
assertion: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing name",
			body: "description: d\nproject: project.json\nsteps: [{action: morph, language: A}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			body: "name: n\nproject: project.json\nsteps: [{action: morph, language: A}]\n",
			want: "description is required",
		},
		{
			name: "missing project file",
			body: "name: n\ndescription: d\nproject: nope.json\nsteps: [{action: morph, language: A}]\n",
			want: "project file not found",
		},
		{
			name: "nothing to do",
			body: "name: n\ndescription: d\nproject: project.json\n",
			want: "steps or assertions are required",
		},
		{
			name: "derive without ancestor",
			body: "name: n\ndescription: d\nproject: project.json\nsteps: [{action: derive, language: A}]\n",
			want: "steps[0]: ancestor is required for derive",
		},
		{
			name: "unknown action",
			body: "name: n\ndescription: d\nproject: project.json\nsteps: [{action: fly, language: A}]\n",
			want: `steps[0]: unknown action "fly"`,
		},
		{
			name: "word without index",
			body: "name: n\ndescription: d\nproject: project.json\nassertions: [{type: word, language: A, expect: {surface: x}}]\n",
			want: "assertions[0]: word is required for word",
		},
		{
			name: "unknown word field",
			body: "name: n\ndescription: d\nproject: project.json\nassertions: [{type: word, language: A, word: 0, expect: {colour: x}}]\n",
			want: `assertions[0]: unknown word field "colour"`,
		},
		{
			name: "unknown assertion",
			body: "name: n\ndescription: d\nproject: project.json\nassertions: [{type: vibes, language: A}]\n",
			want: `assertions[0]: unknown assertion type "vibes"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
