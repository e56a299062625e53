package box

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/lenslab/internal/ir"
)

func entries(pairs ...any) []ir.Entry {
	out := make([]ir.Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, ir.Entry{
			Label:       ir.Label(pairs[i].(string)),
			FocalLength: ir.FocalLength(pairs[i+1].(int)),
		})
	}
	return out
}

func TestEmptyBox(t *testing.T) {
	var b Box
	assert.Equal(t, 0, b.Summary())
	assert.Equal(t, 0, b.Len())

	idx, ok := b.FindIndex("rn")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestInsertAppends(t *testing.T) {
	var b Box
	assert.False(t, b.Insert("rn", 1))
	assert.False(t, b.Insert("cm", 2))

	if diff := cmp.Diff(entries("rn", 1, "cm", 2), b.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1*1+2*2, b.Summary())
}

func TestInsertReplacesInPlace(t *testing.T) {
	var b Box
	b.Insert("ot", 9)
	b.Insert("ab", 5)
	b.Insert("pc", 6)

	replaced := b.Insert("ot", 7)
	assert.True(t, replaced)

	if diff := cmp.Diff(entries("ot", 7, "ab", 5, "pc", 6), b.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, b.Len(), "label uniqueness: no duplicate entry")

	idx, ok := b.FindIndex("ot")
	assert.True(t, ok)
	assert.Equal(t, 0, idx, "replaced entry keeps its original slot")
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	var b Box
	b.Insert("rn", 1)
	b.Insert("cm", 2)

	assert.False(t, b.Remove("qp"))
	if diff := cmp.Diff(entries("rn", 1, "cm", 2), b.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	var empty Box
	assert.False(t, empty.Remove("qp"))
	assert.Equal(t, 0, empty.Len())
}

func TestRemoveShiftsLaterEntries(t *testing.T) {
	var b Box
	b.Insert("a", 1)
	b.Insert("b", 2)
	b.Insert("c", 3)
	b.Insert("d", 4)
	assert.Equal(t, 1*1+2*2+3*3+4*4, b.Summary())

	assert.True(t, b.Remove("b"))

	if diff := cmp.Diff(entries("a", 1, "c", 3, "d", 4), b.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	// c and d each move down one slot
	assert.Equal(t, 1*1+2*3+3*4, b.Summary())
}

func TestRemoveThenReinsertAppends(t *testing.T) {
	var b Box
	b.Insert("pc", 4)
	b.Insert("ab", 5)
	b.Remove("pc")
	b.Insert("pc", 6)

	if diff := cmp.Diff(entries("ab", 5, "pc", 6), b.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	var b Box
	b.Insert("rn", 1)

	got := b.Entries()
	got[0].FocalLength = 9

	assert.Equal(t, 1, b.Summary(), "mutating the copy must not affect the box")
}

func TestReset(t *testing.T) {
	var b Box
	b.Insert("rn", 1)
	b.Insert("cm", 2)
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Summary())
}
