// Package errors provides structured error types for ticketgraph.
//
// Every failure that reaches the CLI carries a machine-readable [Code] so the
// caller can tell configuration problems apart from tracker failures and
// rendering failures:
//
//   - MISSING_CREDENTIALS, INVALID_CONFIG: abort before any network call
//   - NETWORK_ERROR, UNAUTHORIZED, FORBIDDEN, NOT_FOUND, RATE_LIMITED: abort the fetch
//   - INVALID_LINK: malformed link data in a fetched issue
//   - RENDER_FAILED: one output format failed; others still run
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingCredentials, "missing %s", "JIRA_EMAIL")
//	if errors.Is(err, errors.ErrCodeMissingCredentials) {
//	    // Ask the user to export credentials
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "search page at %d", startAt)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeMissingCredentials Code = "MISSING_CREDENTIALS"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLink   Code = "INVALID_LINK"

	// Tracker errors
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeRateLimited  Code = "RATE_LIMITED"

	// Output errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// ErrEdgeEndpointMissing marks an edge whose source or target is not part of
// the rendered node set.
var ErrEdgeEndpointMissing = errors.New("edge endpoint missing from node set")

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

// FromStatus maps a non-success HTTP status from the tracker to an error code.
func FromStatus(status int) Code {
	switch {
	case status == 401:
		return ErrCodeUnauthorized
	case status == 403:
		return ErrCodeForbidden
	case status == 404:
		return ErrCodeNotFound
	case status == 429:
		return ErrCodeRateLimited
	default:
		return ErrCodeNetwork
	}
}
