// Package errors provides structured error types for the aigkit tool surface.
//
// The core packages (aig, toposort, cnf, aiger) report failures through
// plain sentinel errors; this package wraps those into coded errors so the
// CLI and the HTTP API agree on how a failure is classified, displayed, and
// mapped to an exit status or HTTP status.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: input validation failures (bad circuit, bad vector, ...)
//   - *_NOT_FOUND: missing files or archive runs
//   - CYCLE / UNSUPPORTED: well-formed input the requested analysis rejects
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVector, "input vector %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidVector) {
//	    // handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidCircuit, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidCircuit Code = "INVALID_CIRCUIT"
	ErrCodeInvalidVector  Code = "INVALID_VECTOR"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidSuite   Code = "INVALID_SUITE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRunNotFound  Code = "RUN_NOT_FOUND"

	// Analysis rejections: the input parsed but the requested operation
	// cannot run on it.
	ErrCodeCycle       Code = "CYCLE"
	ErrCodeUnsupported Code = "UNSUPPORTED"

	// Backend errors (redis, mongo)
	ErrCodeStorage Code = "STORAGE_ERROR"

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

// HTTPStatus maps an error code to the HTTP status the API responds with.
// Uncoded errors map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidCircuit, ErrCodeInvalidVector,
		ErrCodeInvalidFormat, ErrCodeInvalidSuite:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeRunNotFound:
		return http.StatusNotFound
	case ErrCodeCycle, ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ExitStatus maps an error code to the CLI process exit status: 2 for
// input the user can fix, 3 for missing resources, 4 for analysis
// rejections, 1 for everything else.
func ExitStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidCircuit, ErrCodeInvalidVector,
		ErrCodeInvalidFormat, ErrCodeInvalidSuite:
		return 2
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeRunNotFound:
		return 3
	case ErrCodeCycle, ErrCodeUnsupported:
		return 4
	}
	return 1
}
