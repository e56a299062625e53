package compiler

import (
	"strings"

	"github.com/roach88/lenslab/internal/hasher"
	"github.com/roach88/lenslab/internal/ir"
)

// Option configures compilation.
type Option func(*config)

type config struct {
	strict bool
}

// WithStrict makes the compiler validate the full token grammar:
// a non-empty label free of '=' and '-', followed by "=<digit>" or "-".
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CompileInstruction compiles one trimmed token.
func CompileInstruction(token string, opts ...Option) (ir.Instruction, error) {
	return compileToken(token, -1, newConfig(opts))
}

// CompileLine splits line on commas, trims each token, skips empty
// tokens, and compiles the rest in order. It stops at the first error.
func CompileLine(line string, opts ...Option) ([]ir.Instruction, error) {
	cfg := newConfig(opts)
	tokens := hasher.Tokens(line)

	instructions := make([]ir.Instruction, 0, len(tokens))
	for i, tok := range tokens {
		inst, err := compileToken(tok, i, cfg)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}

func compileToken(token string, index int, cfg config) (ir.Instruction, error) {
	if cfg.strict {
		if err := validateToken(token, index); err != nil {
			return ir.Instruction{}, err
		}
	}

	if token == "" {
		return ir.Instruction{}, &CompileError{Index: index, Token: token, Message: "empty token"}
	}

	last := token[len(token)-1]
	if isDigit(last) {
		if len(token) < 2 {
			return ir.Instruction{}, &CompileError{Index: index, Token: token, Message: "insert token too short"}
		}
		label := ir.Label(token[:len(token)-2])
		return ir.Insert(label, ir.FocalLength(last-'0')), nil
	}

	return ir.Remove(ir.Label(token[:len(token)-1])), nil
}

// validateToken enforces the documented grammar.
func validateToken(token string, index int) error {
	fail := func(msg string) error {
		return &CompileError{Index: index, Token: token, Message: msg}
	}

	var label string
	switch {
	case strings.HasSuffix(token, "-"):
		label = token[:len(token)-1]
	case len(token) >= 2 && token[len(token)-2] == '=' && isDigit(token[len(token)-1]):
		label = token[:len(token)-2]
	default:
		return fail("expected <label>=<digit> or <label>-")
	}

	if label == "" {
		return fail("empty label")
	}
	if strings.ContainsAny(label, "=-") {
		return fail("label must not contain '=' or '-'")
	}
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
