// Package compiler turns raw input tokens into ir.Instructions.
//
// A token is either "<label>=<digit>" (insert) or "<label>-" (remove).
// By default the compiler classifies a token by its last byte and slices
// the label off positionally, exactly as the puzzle reference does:
//
//   - last byte is a digit: label is the token minus its last two bytes
//   - otherwise: label is the token minus its last byte
//
// No delimiter search is performed, so a multi-digit focal length such
// as "ab=12" compiles to label "ab=" with focal length 2. Lenient mode
// keeps this behavior to reproduce reference checksums; strict mode
// (WithStrict) rejects anything outside the grammar instead.
package compiler
