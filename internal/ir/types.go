package ir

import "fmt"

// NumBoxes is the fixed number of boxes in a simulation.
const NumBoxes = 256

// Label names an entry within a box. Labels compare by exact equality.
type Label string

// FocalLength is the value carried by a box entry.
// The supported instruction grammar only produces 0-9.
type FocalLength int

// Op identifies the kind of instruction.
type Op string

const (
	// OpInsert upserts a label into its box.
	OpInsert Op = "insert"

	// OpRemove deletes a label from its box, if present.
	OpRemove Op = "remove"
)

// Instruction is a single parsed token from an input line.
// FocalLength is only meaningful when Op is OpInsert.
type Instruction struct {
	Op          Op          `json:"op"`
	Label       Label       `json:"label"`
	FocalLength FocalLength `json:"focal_length,omitempty"`
}

// Insert builds an insert instruction.
func Insert(label Label, fl FocalLength) Instruction {
	return Instruction{Op: OpInsert, Label: label, FocalLength: fl}
}

// Remove builds a remove instruction.
func Remove(label Label) Instruction {
	return Instruction{Op: OpRemove, Label: label}
}

// String renders the instruction back in token form ("rn=1", "cm-").
func (i Instruction) String() string {
	if i.Op == OpInsert {
		return fmt.Sprintf("%s=%d", i.Label, i.FocalLength)
	}
	return string(i.Label) + "-"
}

// Entry is a (label, focal length) pair held by a box.
type Entry struct {
	Label       Label       `json:"label"`
	FocalLength FocalLength `json:"focal_length"`
}

// BoxLayout is the contents of one non-empty box, in slot order.
type BoxLayout struct {
	Index   int     `json:"index"`
	Entries []Entry `json:"entries"`
}

// Result holds both checksums for an input line.
type Result struct {
	Part1 int `json:"part1"`
	Part2 int `json:"part2"`
}
