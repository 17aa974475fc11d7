// Package errors provides error types and utilities for lexigen
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents the class of failure, used to pick an exit code
type ErrorCode string

const (
	ConfigError        ErrorCode = "config_error"
	InvalidInput       ErrorCode = "invalid_input"
	IOError            ErrorCode = "io_error"
	CardinalityError   ErrorCode = "cardinality_error"
	UnsupportedDialect ErrorCode = "unsupported_dialect"
	InternalError      ErrorCode = "internal_error"
)

// Error is a coded error carrying an optional underlying cause
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a new coded error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new coded error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// NewWithData creates a new coded error with additional data
func NewWithData(code ErrorCode, message string, data interface{}) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Wrap wraps an existing error with coded context
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// CodeOf reports the code of the first coded error in err's chain.
// Uncoded errors report InternalError.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// Is reports whether err carries the given code anywhere in its chain
func Is(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.cause
	}
	return false
}
