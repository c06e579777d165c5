package errors

import (
	"strings"
	"unicode"
)

// MaxVertices bounds the vertex count accepted at the CLI and API boundaries.
// The core has no such limit; enumeration cost grows too fast for larger
// inputs to be useful interactively.
const MaxVertices = 64

// maxInputLength bounds raw text inputs before they reach a parser.
const maxInputLength = 4096

// ValidateInput rejects raw text that is empty, oversized, or contains
// control characters.
func ValidateInput(what, s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", what)
	}
	if len(s) > maxInputLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", what, maxInputLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", what)
		}
	}
	return nil
}

// ValidateDegrees checks a degree sequence for the generator's preconditions:
// at most [MaxVertices] entries, none negative, and non-increasing order.
//
// Graphicality is not checked here. A non-graphical sequence is a valid input
// that simply has no realizations.
func ValidateDegrees(degrees []int) error {
	n := len(degrees)
	if n > MaxVertices {
		return New(ErrCodeInvalidSequence, "%d vertices exceeds the limit of %d", n, MaxVertices)
	}
	for i, d := range degrees {
		if d < 0 {
			return New(ErrCodeInvalidSequence, "degree %d at position %d is negative", d, i)
		}
		if i > 0 && d > degrees[i-1] {
			return New(ErrCodeInvalidSequence, "degrees must be non-increasing (position %d)", i)
		}
	}
	return nil
}

// ValidateGraphText checks the text form of a graph before parsing: only
// digits, colons, commas and whitespace are allowed.
func ValidateGraphText(s string) error {
	if err := ValidateInput("graph", s); err != nil {
		return err
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ':', r == ',', unicode.IsSpace(r):
		default:
			return New(ErrCodeInvalidGraph, "graph contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
