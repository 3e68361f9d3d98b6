// Package domainerrors defines the typed error vocabulary shared by services,
// stores, and transport. Errors carry a Code that decides both the HTTP status
// and the client-side recovery policy (revert, retain, re-authenticate), so
// callers never have to match on message text.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for policy decisions.
type Code string

const (
	// CodeValidation marks input that failed a domain predicate. Recovered
	// locally; no network call should have been made.
	CodeValidation Code = "validation"
	// CodeInvariantViolation marks a broken aggregate invariant detected
	// inside domain logic.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeBadRequest marks a malformed request at the transport boundary.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a lost race over a scarce resource, e.g. a district
	// already claimed by another identity.
	CodeConflict Code = "conflict"
	// CodeUnauthorized marks a missing or expired credential.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks an authenticated caller lacking permission.
	CodeForbidden Code = "forbidden"
	// CodeTimeout marks an operation that exceeded its deadline.
	CodeTimeout Code = "timeout"
	// CodeUnavailable marks a transient backend failure worth retrying.
	CodeUnavailable Code = "unavailable"
	// CodeInternal is the fallback for unclassified failures.
	CodeInternal Code = "internal_error"
)

// Error is a typed domain error. Wrapped causes stay reachable via errors.Is
// and errors.As.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.Unwrap()
		if err == nil {
			return false
		}
	}
	return false
}

// Is is a convenience alias for HasCode, matching call sites that read as
// dErrors.Is(err, dErrors.CodeConflict).
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code of err, or CodeInternal when err carries
// no domain code. The fallback guarantees a caller can always classify.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeInvariantViolation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
