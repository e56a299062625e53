package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lenslab/internal/engine"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Line is the raw input line. Exactly one of Line and Input is set.
	Line string `yaml:"line,omitempty"`

	// Input is a path to a file holding the input line.
	// Relative paths are resolved against the scenario file's directory.
	Input string `yaml:"input,omitempty"`

	// Strict compiles tokens against the full grammar.
	Strict bool `yaml:"strict,omitempty"`

	// Expect holds the expected checksums.
	Expect ExpectClause `yaml:"expect"`

	// Assertions validate the final box layout and trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies expected checksums. Nil fields are not checked.
type ExpectClause struct {
	Part1 *int `yaml:"part1,omitempty"`
	Part2 *int `yaml:"part2,omitempty"`

	// Error is a substring the run error must contain. When set, the run
	// is expected to fail and Part1/Part2 are ignored.
	Error string `yaml:"error,omitempty"`
}

// EntryExpect is an expected box entry.
type EntryExpect struct {
	Label       string `yaml:"label"`
	FocalLength int    `yaml:"focal_length"`
}

// Assertion validates the final state or the trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "box_contents": box Box holds exactly Entries, in order
	// - "outcome_count": the trace has Count events with Outcome
	Type string `yaml:"type"`

	// Box is the box index (used by box_contents).
	Box int `yaml:"box,omitempty"`

	// Entries are the expected entries in slot order (used by box_contents).
	// An empty list asserts the box is empty.
	Entries []EntryExpect `yaml:"entries,omitempty"`

	// Outcome is the trace outcome to count (used by outcome_count).
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected number of events (used by outcome_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertBoxContents  = "box_contents"
	AssertOutcomeCount = "outcome_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// An input path is resolved relative to the scenario file and read.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Input != "" {
		inputPath := scenario.Input
		if !filepath.IsAbs(inputPath) {
			inputPath = filepath.Join(filepath.Dir(path), inputPath)
		}
		content, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: input file: %w", err)
		}
		scenario.Line = string(content)
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
// Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
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

	if s.Line != "" && s.Input != "" {
		return fmt.Errorf("line and input are mutually exclusive")
	}

	if s.Expect.Error == "" && s.Expect.Part1 == nil && s.Expect.Part2 == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("at least one expectation or assertion is required")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertBoxContents:
		if a.Box < 0 || a.Box > 255 {
			return fmt.Errorf("assertions[%d]: box must be in [0,255], got %d", index, a.Box)
		}
	case AssertOutcomeCount:
		switch engine.Outcome(a.Outcome) {
		case engine.OutcomeAppended, engine.OutcomeReplaced, engine.OutcomeRemoved, engine.OutcomeAbsent:
		default:
			return fmt.Errorf("assertions[%d]: unknown outcome %q", index, a.Outcome)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be >= 0", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
