package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one harness run.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Project is the project file to load. LoadScenario resolves it relative
	// to the scenario file.
	Project string `yaml:"project"`

	// MaxIterations overrides the fixpoint cap. Zero uses the engine default.
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// Steps run in order against a single engine.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final project state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one engine operation.
type Step struct {
	// Action is "derive" or "morph".
	Action string `yaml:"action"`

	// Language is a language name or index.
	Language string `yaml:"language"`

	// Ancestor is the source language for derive.
	Ancestor string `yaml:"ancestor,omitempty"`

	// Expect optionally checks the step outcome.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Error is the expected error code (e.g. "GHOST_WORD"). Empty means the
	// step must succeed.
	Error string `yaml:"error,omitempty"`

	// Result holds expected counters (fused, inherited, preserved, morphed).
	// Subset match: only listed counters are compared.
	Result map[string]int `yaml:"result,omitempty"`
}

// Assertion validates final state.
type Assertion struct {
	// Type is one of word, word_count, ancestor, derivations.
	Type string `yaml:"type"`

	// Language is a language name or index.
	Language string `yaml:"language"`

	// Word is the word index (word).
	Word *int `yaml:"word,omitempty"`

	// Expect holds expected word fields (word): surface, phonetic,
	// mnemonic, gloss, note, ancestors. Subset match.
	Expect map[string]string `yaml:"expect,omitempty"`

	// Count is the expected number of live words (word_count) or of logged
	// derivations into the language (derivations).
	Count int `yaml:"count,omitempty"`

	// Ancestor is the expected ancestor language (ancestor).
	Ancestor string `yaml:"ancestor,omitempty"`
}

// Step actions.
const (
	ActionDerive = "derive"
	ActionMorph  = "morph"
)

// Assertion type constants.
const (
	AssertWord      = "word"
	AssertWordCount = "word_count"
	AssertAncestor  = "ancestor"
	AssertLogged    = "derivations"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Reject unknown fields so "assertion:" vs "assertions:" typos surface.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Project != "" && !filepath.IsAbs(scenario.Project) {
		scenario.Project = filepath.Join(filepath.Dir(path), scenario.Project)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Project == "" {
		return fmt.Errorf("project is required")
	}
	if _, err := os.Stat(s.Project); os.IsNotExist(err) {
		return fmt.Errorf("project file not found: %s", s.Project)
	}

	if s.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be non-negative")
	}

	if len(s.Steps) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("steps or assertions are required")
	}

	for i, step := range s.Steps {
		if step.Language == "" {
			return fmt.Errorf("steps[%d]: language is required", i)
		}
		switch step.Action {
		case ActionDerive:
			if step.Ancestor == "" {
				return fmt.Errorf("steps[%d]: ancestor is required for derive", i)
			}
		case ActionMorph:
		case "":
			return fmt.Errorf("steps[%d]: action is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown action %q", i, step.Action)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Language == "" {
		return fmt.Errorf("assertions[%d]: language is required", index)
	}

	switch a.Type {
	case AssertWord:
		if a.Word == nil {
			return fmt.Errorf("assertions[%d]: word is required for word", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for word", index)
		}
		for field := range a.Expect {
			if _, ok := wordFields[field]; !ok {
				return fmt.Errorf("assertions[%d]: unknown word field %q", index, field)
			}
		}
	case AssertWordCount, AssertLogged:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertAncestor:
		if a.Ancestor == "" {
			return fmt.Errorf("assertions[%d]: ancestor is required for ancestor", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
