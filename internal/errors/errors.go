package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig  = "CONFIG"
	ErrKeygen  = "KEYGEN"
	ErrSSHCfg  = "SSHCFG"
	ErrExec    = "EXEC"
	ErrAborted = "ABORTED"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrKeygen code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrKeygen,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewAborted creates an error for operations the user declined to continue.
// Aborts still exit nonzero so scripts wrapping keyup can detect them.
func NewAborted(message string) *Error {
	return &Error{
		Code:    ErrAborted,
		Message: message,
	}
}

// Error implements the error interface with formatted output.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Code == code
	}
	return false
}

// IsAborted reports whether the error represents a user-declined operation.
func IsAborted(err error) bool {
	return IsCode(err, ErrAborted)
}
