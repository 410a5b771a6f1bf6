// Package errors defines structured error types for the cdnflush service.
//
// Operational purge failures never travel as errors; adapters report them as
// PurgeResult values. The errors here cover programming-contract violations
// (an unset provider kind reaching the factory) and startup failures.
package errors

import "fmt"

// Code classifies an application error.
type Code string

const (
	// CodeInvalidArgument marks a programming-contract violation such as a
	// nil provider config handed to the factory.
	CodeInvalidArgument Code = "invalid_argument"

	// CodeConfig marks an invalid or unloadable service configuration.
	CodeConfig Code = "config_error"

	// CodeStorage marks an audit-store failure.
	CodeStorage Code = "storage_error"
)

// AppError is a structured application error.
type AppError struct {
	code    Code
	message string
	cause   error
}

// New creates an AppError with the given code and message.
func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap creates an AppError carrying an underlying cause.
func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{code: code, message: message, cause: cause}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Code returns the error classification.
func (e *AppError) Code() Code {
	return e.code
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code Code) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.code == code
}
