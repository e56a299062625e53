package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lenslab/internal/engine"
	"github.com/roach88/lenslab/internal/ir"
)

// Snapshot captures everything a scenario run produced, for golden comparison.
type Snapshot struct {
	ScenarioName string
	Checksums    ir.Result
	Boxes        []ir.BoxLayout
	Trace        []engine.TraceEvent
}

// toCanonical converts a Snapshot to an IR object for canonical JSON.
func (s *Snapshot) toCanonical() ir.IRObject {
	trace := make(ir.IRArray, len(s.Trace))
	for i, ev := range s.Trace {
		obj := ir.IRObject{
			"seq":     ir.IRInt(ev.Seq),
			"op":      ir.IRString(ev.Op),
			"label":   ir.IRString(ev.Label),
			"box":     ir.IRInt(ev.Box),
			"outcome": ir.IRString(ev.Outcome),
		}
		if ev.Op == ir.OpInsert {
			obj["focal_length"] = ir.IRInt(ev.FocalLength)
		}
		trace[i] = obj
	}

	return ir.IRObject{
		"scenario_name": ir.IRString(s.ScenarioName),
		"part1":         ir.IRInt(s.Checksums.Part1),
		"part2":         ir.IRInt(s.Checksums.Part2),
		"boxes":         ir.LayoutValue(s.Boxes),
		"trace":         trace,
	}
}

// MarshalSnapshot renders a scenario result as canonical JSON.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snap := Snapshot{
		ScenarioName: name,
		Checksums:    result.Checksums,
		Boxes:        result.Snapshot,
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snap.toCanonical())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario cannot be run. Expectation failures and
// golden mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, msg)
	}

	data, err := MarshalSnapshot(scenario.Name, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
