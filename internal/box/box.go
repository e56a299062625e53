// Package box implements a single lens box: an ordered list of labelled
// entries with at most one entry per label.
//
// Boxes hold only a handful of entries, so lookups are a linear scan over
// a slice. Slot order is significant: Summary weights each entry by its
// 1-based position.
package box

import "github.com/roach88/lenslab/internal/ir"

// Box is an ordered sequence of entries, unique by label.
// The zero value is an empty box ready to use.
type Box struct {
	entries []ir.Entry
}

// FindIndex returns the slot of label and true, or -1 and false if the
// label is not in the box.
func (b *Box) FindIndex(label ir.Label) (int, bool) {
	for i, e := range b.entries {
		if e.Label == label {
			return i, true
		}
	}
	return -1, false
}

// Insert sets the focal length for label. An existing entry keeps its slot;
// a new entry is appended. It reports whether an existing entry was replaced.
func (b *Box) Insert(label ir.Label, fl ir.FocalLength) bool {
	if i, ok := b.FindIndex(label); ok {
		b.entries[i].FocalLength = fl
		return true
	}
	b.entries = append(b.entries, ir.Entry{Label: label, FocalLength: fl})
	return false
}

// Remove deletes label from the box, shifting later entries down one slot.
// It reports whether anything was removed; removing an absent label is a no-op.
func (b *Box) Remove(label ir.Label) bool {
	i, ok := b.FindIndex(label)
	if !ok {
		return false
	}
	copy(b.entries[i:], b.entries[i+1:])
	b.entries[len(b.entries)-1] = ir.Entry{}
	b.entries = b.entries[:len(b.entries)-1]
	return true
}

// Summary returns the sum of (slot+1) * focal length over all entries.
func (b *Box) Summary() int {
	total := 0
	for i, e := range b.entries {
		total += (i + 1) * int(e.FocalLength)
	}
	return total
}

// Len returns the number of entries in the box.
func (b *Box) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the entries in slot order.
func (b *Box) Entries() []ir.Entry {
	out := make([]ir.Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Reset empties the box, keeping its backing storage.
func (b *Box) Reset() {
	clear(b.entries)
	b.entries = b.entries[:0]
}
