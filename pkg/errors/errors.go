// Package errors provides structured error types for licensecharts.
//
// Every error that crosses a package boundary carries a machine-readable
// [Code] so the CLI can map it to a message and an exit status without
// string matching.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input, geometry, and configuration failures
//   - NOT_FOUND: Missing datasets or files
//   - NETWORK_*: Data source transport failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "width %v leaves no plot area", w)
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    // nothing was rendered
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"    // records, sizes or labels the layouts cannot use
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY" // frame leaves no plot area
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"   // unknown output format
	ErrCodeInvalidChart    Code = "INVALID_CHART"    // dataset does not fit the chart
	ErrCodeInvalidDataset  Code = "INVALID_DATASET"  // malformed dataset name or body
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"      // dataset unknown to the service
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND" // local dataset file

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// coded is implemented by every error type of this package.
type coded interface {
	error
	code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause. The cause stays reachable through
// errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) code() Code { return e.Code }

// RateLimitedError is returned by the HTTP data source on 429 responses.
type RateLimitedError struct {
	RetryAfter int // seconds, 0 when the server sent no Retry-After
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitedError) code() Code { return ErrCodeRateLimited }

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var c coded
	if errors.As(err, &c) {
		return c.code()
	}
	return ""
}

// Is reports whether the outermost coded error in err's chain has code.
// A Network error wrapping an InvalidInput error is only a Network error.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of err without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Exit statuses returned by [ExitCode].
const (
	ExitFailure  = 1 // unclassified or internal
	ExitInvalid  = 2 // bad flags, input data, geometry or config
	ExitNotFound = 3 // unknown dataset or missing file
	ExitNetwork  = 4 // data service unreachable, failing or rate limiting
)

// ExitCode maps err to a process exit status by its code.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidGeometry, ErrCodeInvalidFormat,
		ErrCodeInvalidChart, ErrCodeInvalidDataset, ErrCodeInvalidConfig, ErrCodeInvalidPath:
		return ExitInvalid
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return ExitNotFound
	case ErrCodeNetwork, ErrCodeTimeout, ErrCodeRateLimited:
		return ExitNetwork
	}
	return ExitFailure
}
