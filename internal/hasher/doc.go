// Package hasher implements the lens-library hash and the Part 1 checksum.
//
// The hash folds each byte of a string into an 8-bit accumulator:
//
//	acc = ((acc + byte) * 17) mod 256
//
// The result selects one of the 256 boxes used by the engine. It must be
// bit-exact: every box placement depends on it.
package hasher
