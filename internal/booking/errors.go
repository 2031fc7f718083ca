package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a booking or cancellation failure. The classification is
// what callers act on: a scheduling conflict suggests picking another slot,
// a validation failure suggests fixing the request, an API error suggests
// the remote system (or the session) is the problem.
type Kind int

const (
	// KindAPIError covers transport, HTTP, and unclassified remote failures.
	KindAPIError Kind = iota
	// KindSchedulingConflict means the room is already booked in the window.
	KindSchedulingConflict
	// KindValidationFailure means the remote system refused the request as
	// invalid (time passed, room disabled, payment declined).
	KindValidationFailure
	// KindRejectedUnavailable means the cart or payment was rejected with
	// unavailability signals but no more specific diagnosis.
	KindRejectedUnavailable
	// KindInputValidation means the request never left the client: it failed
	// structural validation before any network call.
	KindInputValidation
)

// String returns a stable identifier for the kind, used by the protocol
// layer as an error code.
func (k Kind) String() string {
	switch k {
	case KindSchedulingConflict:
		return "SCHEDULING_CONFLICT"
	case KindValidationFailure:
		return "VALIDATION_FAILURE"
	case KindRejectedUnavailable:
		return "REJECTED_UNAVAILABLE"
	case KindInputValidation:
		return "INPUT_VALIDATION"
	default:
		return "API_ERROR"
	}
}

// Error is a classified booking failure with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	// Rooms names the rooms involved when the remote response identified
	// them (conflicts, disabled rooms).
	Rooms []string
	// Violations holds the individual findings for input-validation
	// failures, one per violating field, batch positions included.
	Violations []string
	// Err preserves the underlying cause when one exists.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a booking Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == kind
}

func apiError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindAPIError, Message: fmt.Sprintf(format, args...), Err: err}
}

// InputError builds an input-validation Error from individual findings.
func InputError(violations []string) *Error {
	return &Error{
		Kind:       KindInputValidation,
		Message:    "validation errors found:\n  - " + strings.Join(violations, "\n  - "),
		Violations: violations,
	}
}
