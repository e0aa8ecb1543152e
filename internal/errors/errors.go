// Package errors provides structured errors for shelf's configuration and
// CLI surfaces.
//
// The engine packages themselves never construct these: precondition
// violations there panic by contract, and everything else degrades
// silently. Structured errors exist for the places a human reads the
// message: config loading and command-line startup.
package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryRuntime    Category = "runtime"
	CategoryCLI        Category = "cli"
)

// Error is a structured error with a stable code and an optional fix
// suggestion.
type Error struct {
	// Code is a unique error identifier (e.g. "S001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// New creates a structured error.
func New(code string, category Category, message string) *Error {
	return &Error{Code: code, Category: category, Message: message}
}

// Newf creates a structured error with a formatted message.
func Newf(code string, category Category, format string, args ...any) *Error {
	return &Error{Code: code, Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err in a structured error.
func Wrap(err error, code string, category Category, message string) *Error {
	return &Error{Code: code, Category: category, Message: message, Wrapped: err}
}
