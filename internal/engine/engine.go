package engine

import (
	"github.com/roach88/lenslab/internal/box"
	"github.com/roach88/lenslab/internal/compiler"
	"github.com/roach88/lenslab/internal/hasher"
	"github.com/roach88/lenslab/internal/ir"
)

// Simulator holds the 256 boxes of one simulation run.
type Simulator struct {
	boxes  [ir.NumBoxes]box.Box
	clock  *Clock
	tracer Tracer
	strict bool
}

// Option allows configuration of a Simulator.
type Option func(*Simulator)

// WithTracer sends a TraceEvent to t for every applied instruction.
func WithTracer(t Tracer) Option {
	return func(s *Simulator) {
		s.tracer = t
	}
}

// WithStrict rejects tokens outside the documented grammar instead of
// slicing them positionally.
func WithStrict() Option {
	return func(s *Simulator) {
		s.strict = true
	}
}

// New creates a Simulator with all boxes empty.
func New(opts ...Option) *Simulator {
	s := &Simulator{clock: NewClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply applies one instruction to the box selected by its label's hash.
func (s *Simulator) Apply(inst ir.Instruction) Outcome {
	idx := hasher.Hash(string(inst.Label))
	b := &s.boxes[idx]

	var outcome Outcome
	switch inst.Op {
	case ir.OpInsert:
		outcome = OutcomeAppended
		if b.Insert(inst.Label, inst.FocalLength) {
			outcome = OutcomeReplaced
		}
	default:
		outcome = OutcomeAbsent
		if b.Remove(inst.Label) {
			outcome = OutcomeRemoved
		}
	}

	if s.tracer != nil {
		ev := TraceEvent{
			Seq:     s.clock.Next(),
			Op:      inst.Op,
			Label:   inst.Label,
			Box:     idx,
			Outcome: outcome,
		}
		if inst.Op == ir.OpInsert {
			ev.FocalLength = inst.FocalLength
		}
		s.tracer.Record(ev)
	}
	return outcome
}

// Exec compiles line and applies every instruction in token order.
// Nothing is applied if any token fails to compile.
func (s *Simulator) Exec(line string) error {
	var opts []compiler.Option
	if s.strict {
		opts = append(opts, compiler.WithStrict())
	}
	instructions, err := compiler.CompileLine(line, opts...)
	if err != nil {
		return newMalformedTokenError(err)
	}
	for _, inst := range instructions {
		s.Apply(inst)
	}
	return nil
}

// Checksum returns the focusing power: the sum of (i+1) * Summary over
// all boxes i.
func (s *Simulator) Checksum() int {
	total := 0
	for i := range s.boxes {
		total += (i + 1) * s.boxes[i].Summary()
	}
	return total
}

// Box returns a copy of the entries of box i, in slot order.
// An index outside [0, NumBoxes) has no box and yields nil.
func (s *Simulator) Box(i int) []ir.Entry {
	if i < 0 || i >= ir.NumBoxes {
		return nil
	}
	return s.boxes[i].Entries()
}

// Snapshot returns the non-empty boxes in index order.
func (s *Simulator) Snapshot() []ir.BoxLayout {
	layouts := []ir.BoxLayout{}
	for i := range s.boxes {
		if s.boxes[i].Len() == 0 {
			continue
		}
		layouts = append(layouts, ir.BoxLayout{Index: i, Entries: s.boxes[i].Entries()})
	}
	return layouts
}

// Reset empties every box and rewinds the trace clock.
func (s *Simulator) Reset() {
	for i := range s.boxes {
		s.boxes[i].Reset()
	}
	s.clock.Reset()
}

// Run simulates line on a fresh set of boxes and returns the focusing power.
func Run(line string, opts ...Option) (int, error) {
	s := New(opts...)
	if err := s.Exec(line); err != nil {
		return 0, err
	}
	return s.Checksum(), nil
}

// Solve computes both checksums for line: the Part 1 token hash sum and
// the Part 2 focusing power.
//
// Part 1 hashes tokens verbatim and never fails. When line does not
// compile, the returned Result still carries Part 1, Part 2 is 0 and the
// compile error is returned.
func Solve(line string, opts ...Option) (ir.Result, error) {
	result := ir.Result{Part1: hasher.Sum(line)}
	part2, err := Run(line, opts...)
	if err != nil {
		return result, err
	}
	result.Part2 = part2
	return result, nil
}
