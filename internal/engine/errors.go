package engine

import (
	"errors"
	"fmt"
)

// RuntimeErrorCode categorizes simulation errors.
type RuntimeErrorCode string

const (
	// ErrCodeMalformedToken indicates a token could not be compiled.
	ErrCodeMalformedToken RuntimeErrorCode = "MALFORMED_TOKEN"
)

// RuntimeError represents an error detected while running a simulation.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsMalformedTokenError returns true if the error is a malformed token error.
// Uses errors.As to handle wrapped errors.
func IsMalformedTokenError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeMalformedToken
	}
	return false
}

func newMalformedTokenError(err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMalformedToken,
		Message: "input line does not compile",
		Err:     err,
	}
}
