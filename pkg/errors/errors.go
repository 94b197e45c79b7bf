// Package errors provides structured error types for logogds.
//
// Every failure the tool can report falls into one of a handful of
// categories, each with a machine-readable [Code]:
//
//   - CONFIG_ERROR: bad flags, unreadable or invalid configuration files
//   - INVALID_INPUT: values that parse but are unusable (zero-size image, bad pitch)
//   - INPUT_ERROR: the image file is missing, unreadable, or cannot be decoded
//   - OUTPUT_ERROR: the layout or a side artifact cannot be written
//   - INTERNAL_ERROR: anything that indicates a bug
//
// Design-rule findings are never errors; they are reported through the DRC
// report and logged as warnings.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "pixel size must be positive, got %g", p)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInput, origErr, "failed to decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure categories of a conversion run.
const (
	ErrCodeConfig       Code = "CONFIG_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInput        Code = "INPUT_ERROR"
	ErrCodeOutput       Code = "OUTPUT_ERROR"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
