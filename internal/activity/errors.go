package activity

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization, checked with errors.Is.
var (
	// ErrValidation indicates malformed input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotPermitted indicates the actor lacks the role the action requires.
	// It is a kind of ErrValidation.
	ErrNotPermitted = fmt.Errorf("%w: not permitted", ErrValidation)

	// ErrNotFound indicates a missing task or project, or an actor without
	// membership in the project.
	ErrNotFound = errors.New("not found")

	// ErrPersistence indicates the primary store write or read failed.
	ErrPersistence = errors.New("persistence failure")

	// ErrPartialFailure indicates the primary mutation succeeded but one or
	// more secondary steps did not.
	ErrPartialFailure = errors.New("partial failure")
)

// Error carries a caller-facing message together with its category.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func validationf(format string, args ...any) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func notPermittedf(format string, args ...any) error {
	return &Error{kind: ErrNotPermitted, msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func persistence(err error, format string, args ...any) error {
	return &Error{kind: ErrPersistence, msg: fmt.Sprintf(format, args...), cause: err}
}

// isRejection reports whether err was caused by the caller rather than the system.
func isRejection(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}
