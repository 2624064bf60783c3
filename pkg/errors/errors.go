// Package errors provides structured error types for cargo-dep.
//
// Every failure in the graph pipeline is fatal for the run. Errors carry a
// machine-readable [Code] so callers (and tests) can tell the failure kinds
// apart, and an optional cause so the CLI can print the full chain:
//
//	Error: could not find exclude spec `foo`
//	Caused by: ...
//
// # Error Codes
//
//   - INVALID_*: malformed input (versions, metadata, manifests, flags)
//   - *_NOT_FOUND: a name or id could not be matched
//   - DUPLICATE_ID: two packages share a provider id
//   - INTERNAL_ERROR: an invariant of the graph was violated
//
// # Usage
//
//	err := errors.New(errors.ErrCodeExcludeNotFound, "could not find exclude spec `%s`", name)
//	if errors.Is(err, errors.ErrCodeExcludeNotFound) {
//	    // Handle missing exclude
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidVersion, origErr, "package %s", id)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidVersion  Code = "INVALID_VERSION"
	ErrCodeInvalidMetadata Code = "INVALID_METADATA"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Graph construction errors
	ErrCodeDuplicateID Code = "DUPLICATE_ID"

	// Lookup errors
	ErrCodeResolveIDNotFound Code = "RESOLVE_ID_NOT_FOUND"
	ErrCodeDepIDNotFound     Code = "DEP_ID_NOT_FOUND"
	ErrCodeExcludeNotFound   Code = "EXCLUDE_NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// Provider errors
	ErrCodeMetadataUnavailable Code = "METADATA_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Causes returns one message per link of the error chain, outermost first.
//
// Links that are *Error contribute their Message and the walk continues with
// their Cause. Any other link contributes its full Error() text, which already
// embeds whatever it wraps, and ends the walk.
func Causes(err error) []string {
	var out []string
	for err != nil {
		e, ok := err.(*Error)
		if !ok {
			out = append(out, err.Error())
			break
		}
		out = append(out, e.Message)
		err = e.Cause
	}
	return out
}
