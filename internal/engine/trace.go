package engine

import "github.com/roach88/lenslab/internal/ir"

// Outcome describes what an instruction did to its box.
type Outcome string

const (
	OutcomeAppended Outcome = "appended" // insert of a new label
	OutcomeReplaced Outcome = "replaced" // insert of an existing label
	OutcomeRemoved  Outcome = "removed"  // remove of a present label
	OutcomeAbsent   Outcome = "absent"   // remove of a missing label, no-op
)

// TraceEvent records one applied instruction.
// FocalLength is 0 for removes.
type TraceEvent struct {
	Seq         int64          `json:"seq"`
	Op          ir.Op          `json:"op"`
	Label       ir.Label       `json:"label"`
	FocalLength ir.FocalLength `json:"focal_length"`
	Box         int            `json:"box"`
	Outcome     Outcome        `json:"outcome"`
}

// Tracer receives trace events as instructions are applied.
type Tracer interface {
	Record(TraceEvent)
}

// Recorder is a Tracer that keeps every event in order.
type Recorder struct {
	Events []TraceEvent
}

// Record implements Tracer.
func (r *Recorder) Record(ev TraceEvent) {
	r.Events = append(r.Events, ev)
}

// Count returns how many events had the given outcome.
func (r *Recorder) Count(o Outcome) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Outcome == o {
			n++
		}
	}
	return n
}
