// Package errors provides sentinel errors and exit codes for the htmls2epub CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrConfiguration indicates required run options are missing or invalid.
	ErrConfiguration = errors.New("configuration error")

	// ErrIO indicates a file read, write, copy or remove failure.
	ErrIO = errors.New("i/o error")

	// ErrParse indicates a malformed template document or book manifest.
	ErrParse = errors.New("parse error")

	// ErrStructural indicates a navigation hierarchy that cannot be nested.
	ErrStructural = errors.New("structural error")

	// ErrArchive indicates the EPUB container could not be written.
	ErrArchive = errors.New("archive error")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error relates to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a configuration error with a hint.
func NewConfigurationError(message, hint string) error {
	return &DetailError{
		Type:    "invalid configuration",
		Message: message,
		Hint:    hint,
		Cause:   ErrConfiguration,
	}
}

// NewParseError creates a parse error for the document at location.
func NewParseError(message, location string, cause error) error {
	return &DetailError{
		Type:     "parse failed",
		Message:  message,
		Location: location,
		Cause:    Join(ErrParse, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// WrapCause wraps cause with a sentinel and a message, keeping both
// reachable through errors.Is.
func WrapCause(sentinel error, cause error, message string) error {
	if cause == nil {
		return Wrap(sentinel, message)
	}
	return fmt.Errorf("%s: %w: %w", message, sentinel, cause)
}

// Join returns an error matching both sentinel and cause. A nil cause
// returns the sentinel alone.
func Join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
