// Package errors provides standardized domain errors with codes for the Songboard API.
//
// Usage:
//
//	// In services - return typed errors
//	if snapshot == nil {
//	    return errors.DataUnavailable("primary dataset could not be loaded")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    return nil, huma.Error404NotFound(err.Error())
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	// CodeDataUnavailable means the primary dataset file is missing or
	// unparseable. Fatal to every view; there is no fallback.
	CodeDataUnavailable Code = "DATA_UNAVAILABLE"

	// CodeAnnotationUnavailable means the annotation file is missing,
	// malformed, or lacks required columns. Recoverable: the catalog keeps
	// serving with analysis disabled.
	CodeAnnotationUnavailable Code = "ANNOTATION_UNAVAILABLE"

	// CodeEmptyProjection means a requested column is absent or entirely
	// null. Recoverable: the corresponding view is simply omitted.
	CodeEmptyProjection Code = "EMPTY_PROJECTION"

	CodeNotFound   Code = "NOT_FOUND"
	CodeValidation Code = "VALIDATION"
	CodeInternal   Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeDataUnavailable, CodeAnnotationUnavailable:
		return http.StatusServiceUnavailable
	case CodeEmptyProjection:
		return http.StatusOK
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrDataUnavailable       = &Error{Code: CodeDataUnavailable, Message: "dataset unavailable"}
	ErrAnnotationUnavailable = &Error{Code: CodeAnnotationUnavailable, Message: "annotations unavailable"}
	ErrEmptyProjection       = &Error{Code: CodeEmptyProjection, Message: "nothing to project"}
	ErrNotFound              = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation            = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal              = &Error{Code: CodeInternal, Message: "internal error"}
)

// DataUnavailable creates a data unavailable error.
func DataUnavailable(msg string) *Error {
	return &Error{Code: CodeDataUnavailable, Message: msg}
}

// DataUnavailablef creates a data unavailable error with formatted message.
func DataUnavailablef(format string, args ...any) *Error {
	return &Error{Code: CodeDataUnavailable, Message: fmt.Sprintf(format, args...)}
}

// AnnotationUnavailable creates an annotation unavailable error.
func AnnotationUnavailable(msg string) *Error {
	return &Error{Code: CodeAnnotationUnavailable, Message: msg}
}

// EmptyProjection creates an empty projection error.
func EmptyProjection(msg string) *Error {
	return &Error{Code: CodeEmptyProjection, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
