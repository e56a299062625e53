package ir

import (
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface representing constrained value types.
// Only IRString, IRInt, IRBool, IRArray, and IRObject implement this.
type IRValue interface {
	irValue()
}

// IRString represents a string value in the IR.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value in the IR.
type IRInt int64

func (IRInt) irValue() {}

// IRBool represents a boolean value in the IR.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an array of IRValue elements.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to IRValue elements.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering.
// Go's default string comparison uses UTF-8 which produces a different order
// for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

// EntryValue converts a box entry to its IR form.
func EntryValue(e Entry) IRObject {
	return IRObject{
		"label":        IRString(e.Label),
		"focal_length": IRInt(e.FocalLength),
	}
}

// LayoutValue converts box layouts to their IR form.
// Layouts keep their given order; entries keep slot order.
func LayoutValue(layouts []BoxLayout) IRArray {
	arr := make(IRArray, len(layouts))
	for i, l := range layouts {
		entries := make(IRArray, len(l.Entries))
		for j, e := range l.Entries {
			entries[j] = EntryValue(e)
		}
		arr[i] = IRObject{
			"index":   IRInt(l.Index),
			"entries": entries,
		}
	}
	return arr
}
