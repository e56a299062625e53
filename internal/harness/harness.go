package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/lenslab/internal/engine"
	"github.com/roach88/lenslab/internal/hasher"
	"github.com/roach88/lenslab/internal/ir"
)

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool

	// Checksums computed for the scenario line. Part2 is zero when the
	// line was not simulated or failed to compile.
	Checksums ir.Result

	// Snapshot is the final layout of non-empty boxes.
	Snapshot []ir.BoxLayout

	// Trace holds every applied instruction in order.
	Trace []engine.TraceEvent

	// RunError is the simulation error, if any.
	RunError error

	// Errors lists failed expectations.
	Errors []string
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario on a fresh simulator and evaluates its
// expectations. A failed expectation is reported in Result.Errors, not
// as an error; the returned error is reserved for unusable scenarios.
//
// Part 1 is computed from the raw tokens and checked even when the line
// does not compile. A scenario that only expects Part 1 is never
// simulated.
func Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("nil scenario")
	}

	result := &Result{
		Pass:      true,
		Checksums: ir.Result{Part1: hasher.Sum(scenario.Line)},
		Snapshot:  []ir.BoxLayout{},
	}
	if want := scenario.Expect.Part1; want != nil && *want != result.Checksums.Part1 {
		result.addError("part1 = %d, want %d", result.Checksums.Part1, *want)
	}
	if !scenario.needsSimulation() {
		return result, nil
	}

	rec := &engine.Recorder{}
	opts := []engine.Option{engine.WithTracer(rec)}
	if scenario.Strict {
		opts = append(opts, engine.WithStrict())
	}

	sim := engine.New(opts...)
	if err := sim.Exec(scenario.Line); err != nil {
		result.RunError = err
		result.Trace = rec.Events
		if scenario.Expect.Error == "" {
			result.addError("unexpected error: %v", err)
		} else if !strings.Contains(err.Error(), scenario.Expect.Error) {
			result.addError("error %q does not contain %q", err.Error(), scenario.Expect.Error)
		}
		return result, nil
	}

	result.Checksums.Part2 = sim.Checksum()
	result.Snapshot = sim.Snapshot()
	result.Trace = rec.Events

	if scenario.Expect.Error != "" {
		result.addError("expected error containing %q, run succeeded", scenario.Expect.Error)
	}
	if want := scenario.Expect.Part2; want != nil && *want != result.Checksums.Part2 {
		result.addError("part2 = %d, want %d", result.Checksums.Part2, *want)
	}

	for i, a := range scenario.Assertions {
		if msg := evaluateAssertion(sim, rec, a); msg != "" {
			result.addError("assertions[%d] (%s): %s", i, a.Type, msg)
		}
	}

	return result, nil
}

// needsSimulation reports whether any expectation depends on the boxes.
func (s *Scenario) needsSimulation() bool {
	return s.Expect.Part2 != nil || s.Expect.Error != "" || len(s.Assertions) > 0
}

// evaluateAssertion returns a failure message, or "" if the assertion holds.
func evaluateAssertion(sim *engine.Simulator, rec *engine.Recorder, a Assertion) string {
	switch a.Type {
	case AssertBoxContents:
		got := sim.Box(a.Box)
		if len(got) != len(a.Entries) {
			return fmt.Sprintf("box %d has %d entries, want %d (%s)", a.Box, len(got), len(a.Entries), formatEntries(got))
		}
		for i, want := range a.Entries {
			if string(got[i].Label) != want.Label || int(got[i].FocalLength) != want.FocalLength {
				return fmt.Sprintf("box %d slot %d = %s %d, want %s %d",
					a.Box, i+1, got[i].Label, got[i].FocalLength, want.Label, want.FocalLength)
			}
		}
	case AssertOutcomeCount:
		if got := rec.Count(engine.Outcome(a.Outcome)); got != a.Count {
			return fmt.Sprintf("%d %s events, want %d", got, a.Outcome, a.Count)
		}
	}
	return ""
}

func formatEntries(entries []ir.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("[%s %d]", e.Label, e.FocalLength)
	}
	return strings.Join(parts, " ")
}
