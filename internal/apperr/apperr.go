// Package apperr defines the error taxonomy shared by the domain services.
// Every error surfaced to a caller is classified as NotFound, BadRequest,
// Forbidden or Conflict and carries a human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown Kind = iota
	// KindNotFound indicates a referenced user/region/team/rabbit/group does not exist.
	KindNotFound
	// KindBadRequest indicates missing or invalid input, such as a role without its required scope.
	KindBadRequest
	// KindForbidden indicates the principal's role or scope does not cover the target entity.
	KindForbidden
	// KindConflict indicates an inconsistency, such as a mixed-status rabbit group.
	KindConflict
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindBadRequest:
		return "bad request"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a NotFound error with a formatted message.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest creates a BadRequest error with a formatted message.
func BadRequest(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Forbidden creates a Forbidden error with a formatted message.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a Conflict error with a formatted message.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an existing classified error.
func Wrap(err *Error, cause error) *Error {
	return &Error{Kind: err.Kind, Message: err.Message, Err: cause}
}

// KindOf extracts the kind of err, or KindUnknown if err is not classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindUnknown
}

// IsNotFound reports whether err is classified as NotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsBadRequest reports whether err is classified as BadRequest.
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }

// IsForbidden reports whether err is classified as Forbidden.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsConflict reports whether err is classified as Conflict.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
