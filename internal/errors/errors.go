// Package errors defines stable error codes for all failure modes of the
// analysis engine.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseError indicates a file could not be parsed; the file is skipped
	// and the scan continues
	ParseError ErrorCode = "PARSE_ERROR"
	// UnsupportedLanguage indicates no backend is registered for a language tag
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// InvalidFilterSyntax indicates a malformed query term; the whole query
	// is rejected
	InvalidFilterSyntax ErrorCode = "INVALID_FILTER_SYNTAX"
	// InvalidRegexPattern indicates a filter pattern that does not compile;
	// the filter matches nothing
	InvalidRegexPattern ErrorCode = "INVALID_REGEX_PATTERN"
	// ElementNotFound indicates a semantic-blame target is absent
	ElementNotFound ErrorCode = "ELEMENT_NOT_FOUND"
	// UnresolvedModule indicates an import edge with no resolvable target
	UnresolvedModule ErrorCode = "UNRESOLVED_MODULE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// LensError represents an engine error with a stable code and message
type LensError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a new LensError
func New(code ErrorCode, message string, cause error) *LensError {
	return &LensError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new LensError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LensError {
	return &LensError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *LensError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LensError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *LensError) WithDetails(details interface{}) *LensError {
	e.Details = details
	return e
}

// CodeOf extracts the error code from err, or InternalError when err is not
// a LensError.
func CodeOf(err error) ErrorCode {
	var le *LensError
	if errors.As(err, &le) {
		return le.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
