package compiler

import (
	"errors"
	"fmt"
)

// CompileError reports a token that could not be compiled.
type CompileError struct {
	// Index is the 0-based position of the token in its line, or -1 when
	// compiling a single token.
	Index int

	// Token is the trimmed token text.
	Token string

	// Message describes what is wrong with the token.
	Message string
}

func (e *CompileError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("token %d %q: %s", e.Index, e.Token, e.Message)
	}
	return fmt.Sprintf("token %q: %s", e.Token, e.Message)
}

// IsCompileError returns true if err is or wraps a CompileError.
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}
