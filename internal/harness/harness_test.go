package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/babel/internal/ir"
	"github.com/roach88/babel/internal/testutil"
)

func intp(i int) *int { return &i }

// ghostProject has a Daughter word pointing at a tombstoned Proto slot.
func ghostProject(t *testing.T) *ir.Project {
	b := testutil.NewProject(t)
	b.Language("Proto").Word("pata", "father").Tombstone()
	b.Language("Daughter").Word("gone", "ghost", testutil.At(0, 1))
	return b.Build()
}

func TestRun_Voicing(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "voicing.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 2)
	derive := result.Trace[0]
	assert.Equal(t, ActionDerive, derive.Action)
	assert.Equal(t, 1, derive.Language)
	assert.Equal(t, 0, derive.Ancestor)
	assert.Equal(t, int64(1), derive.Seq)
	assert.NotEmpty(t, derive.Digest)
	assert.Equal(t, 4, result.Trace[1].Morphed)
}

func TestRun_DoesNotTouchProjectFile(t *testing.T) {
	path := filepath.Join("testdata", "scenarios", "voicing.yaml")
	first, err := LoadScenario(path)
	require.NoError(t, err)
	r1, err := Run(first)
	require.NoError(t, err)

	second, err := LoadScenario(path)
	require.NoError(t, err)
	r2, err := Run(second)
	require.NoError(t, err)

	assert.Equal(t, r1.Trace, r2.Trace)
}

func TestRunProject_ExpectedError(t *testing.T) {
	scenario := &Scenario{
		Name: "ghost",
		Steps: []Step{{
			Action:   ActionDerive,
			Language: "Daughter",
			Ancestor: "Proto",
			Expect:   &ExpectClause{Error: "GHOST_WORD"},
		}},
		Assertions: []Assertion{
			{Type: AssertWordCount, Language: "Daughter", Count: 1},
			{Type: AssertLogged, Language: "Daughter", Count: 0},
		},
	}

	result, err := RunProject(context.Background(), scenario, ghostProject(t))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "GHOST_WORD", result.Trace[0].Error)
}

func TestRunProject_UnexpectedErrorStops(t *testing.T) {
	scenario := &Scenario{
		Name: "ghost",
		Steps: []Step{
			{Action: ActionDerive, Language: "Daughter", Ancestor: "Proto"},
			{Action: ActionMorph, Language: "Daughter"},
		},
	}

	result, err := RunProject(context.Background(), scenario, ghostProject(t))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Trace, 1, "the morph step never runs")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "steps[0] derive: unexpected error")
	assert.Contains(t, result.Errors[0], "GHOST_WORD")
}

func TestRunProject_WrongErrorCode(t *testing.T) {
	scenario := &Scenario{
		Name: "self",
		Steps: []Step{{
			Action:   ActionDerive,
			Language: "Proto",
			Ancestor: "Proto",
			Expect:   &ExpectClause{Error: "GHOST_WORD"},
		}},
	}

	result, err := RunProject(context.Background(), scenario, ghostProject(t))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "DERIVE_FROM_SELF", result.Trace[0].Error)
	assert.Contains(t, result.Errors[0], "expected error GHOST_WORD")
}

func TestRunProject_ExpectedErrorButSucceeded(t *testing.T) {
	scenario := &Scenario{
		Name: "morph",
		Steps: []Step{{
			Action:   ActionMorph,
			Language: "Proto",
			Expect:   &ExpectClause{Error: "NON_TERMINATING_RULE"},
		}},
	}

	result, err := RunProject(context.Background(), scenario, ghostProject(t))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected error NON_TERMINATING_RULE, got success")
}

func TestRunProject_ResultMismatch(t *testing.T) {
	b := testutil.NewProject(t)
	b.Language("Proto").Word("pata", "father").Word("tama", "mother")
	b.Language("Daughter")

	scenario := &Scenario{
		Name: "counts",
		Steps: []Step{{
			Action:   ActionDerive,
			Language: "1",
			Ancestor: "0",
			Expect:   &ExpectClause{Result: map[string]int{"inherited": 3, "fused": 0, "bogus": 1}},
		}},
	}

	result, err := RunProject(context.Background(), scenario, b.Build())
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{
		`steps[0] derive: unknown result field "bogus"`,
		"steps[0] derive: expected inherited = 3, got 2",
	}, result.Errors)
}

func TestRunProject_NonTerminatingWithCap(t *testing.T) {
	b := testutil.NewProject(t)
	b.Language("Loop").Surface("a", "aa").Word("a", "grows")

	scenario := &Scenario{
		Name:          "loop",
		MaxIterations: 5,
		Steps: []Step{{
			Action:   ActionMorph,
			Language: "Loop",
			Expect:   &ExpectClause{Error: "NON_TERMINATING_RULE"},
		}},
		Assertions: []Assertion{
			{Type: AssertWord, Language: "Loop", Word: intp(0), Expect: map[string]string{"surface": "a"}},
		},
	}

	result, err := RunProject(context.Background(), scenario, b.Build())
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunProject_UnknownLanguage(t *testing.T) {
	scenario := &Scenario{
		Name:  "missing",
		Steps: []Step{{Action: ActionMorph, Language: "Nowhere"}},
	}

	result, err := RunProject(context.Background(), scenario, ghostProject(t))
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "ERROR", result.Trace[0].Error)
	assert.Contains(t, result.Errors[0], `unknown language "Nowhere"`)
}
