package hasher

import "strings"

// Multiplier is applied after each byte is added to the accumulator.
const Multiplier = 17

// Hash returns the box index for s, in [0, 256).
// Strings are hashed byte by byte; the empty string hashes to 0.
func Hash(s string) int {
	var acc uint8
	for i := 0; i < len(s); i++ {
		// uint8 arithmetic wraps, which is exactly mod 256
		acc = (acc + s[i]) * Multiplier
	}
	return int(acc)
}

// Tokens splits a raw line on commas and trims surrounding whitespace
// from each token. Empty tokens are dropped, so an empty line or a
// trailing newline contributes nothing.
func Tokens(line string) []string {
	parts := strings.Split(line, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// Sum is the Part 1 checksum: the sum of Hash over every token of line.
// Tokens are hashed verbatim, without being parsed as instructions.
func Sum(line string) int {
	total := 0
	for _, tok := range Tokens(line) {
		total += Hash(tok)
	}
	return total
}
