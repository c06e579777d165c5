// Package errors provides structured error types for the orbitgen CLI and API.
//
// The core packages (graph, refine, degseq) return plain sentinel errors. This
// package wraps them with machine-readable codes at the boundaries so the CLI
// can print a friendly message and the HTTP server can pick a status code.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Missing resources such as cache entries
//   - ABORTED, TIMEOUT: Runs stopped before the search was exhausted
//   - INTERNAL_*: Unexpected internal errors, including engine failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSequence, "degree %d is negative", d)
//	if errors.Is(err, errors.ErrCodeInvalidSequence) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "generate %s", seq)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidSequence    Code = "INVALID_SEQUENCE"
	ErrCodeInvalidGraph       Code = "INVALID_GRAPH"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidPartitioner Code = "INVALID_PARTITIONER"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Run outcome errors
	ErrCodeAborted Code = "ABORTED"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidSequence, ErrCodeInvalidGraph,
		ErrCodeInvalidFormat, ErrCodeInvalidPartitioner, ErrCodeInvalidPath:
		return true
	}
	return false
}

// AbortedError describes a generation run that stopped early.
type AbortedError struct {
	Reason string // why the run stopped, e.g. "timeout" or "max results"
	Count  int64  // graphs emitted before the stop
}

// Error implements the error interface.
func (e *AbortedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("aborted after %d graphs: %s", e.Count, e.Reason)
	}
	return fmt.Sprintf("aborted after %d graphs", e.Count)
}

// Code returns the error code for this error type.
func (e *AbortedError) Code() Code {
	if e.Reason == "timeout" {
		return ErrCodeTimeout
	}
	return ErrCodeAborted
}
