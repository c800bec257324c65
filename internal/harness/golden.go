package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/babel/internal/ir"
)

// VocabularySnapshot captures the final vocabularies of a scenario run.
type VocabularySnapshot struct {
	ScenarioName string
	Project      *ir.Project
}

// toCanonicalMap converts the snapshot to canonical JSON input, keyed by
// language name. Tombstoned languages are skipped; tombstoned words keep
// their slot.
func (s *VocabularySnapshot) toCanonicalMap() map[string]any {
	languages := map[string]any{}
	for _, lang := range s.Project.Languages.All() {
		languages[lang.Name] = ir.CanonicalVocabulary(&lang.Vocabulary)
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"languages":     languages,
	}
}

// Canonical returns the canonical JSON encoding of the snapshot.
func (s *VocabularySnapshot) Canonical() ([]byte, error) {
	return ir.MarshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the final vocabularies
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the run result; goldie fails the test on a snapshot mismatch.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the golden file for
// scenarioName without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := VocabularySnapshot{
		ScenarioName: scenarioName,
		Project:      result.Project,
	}
	data, err := snapshot.Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
