package service

import "errors"

// Error taxonomy shared by every service. Handlers map these to HTTP status
// codes; anything else is treated as an internal failure and surfaced as 500
// without detail.

// NotFoundError indicates a referenced resource does not exist.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

// NotFound builds a NotFoundError with a user-facing message.
func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

// InvalidStateError indicates an operation against the wrong lifecycle state
// (e.g. recording a transaction on a closed box). The caller should re-fetch
// the current state before retrying.
type InvalidStateError struct{ Msg string }

func (e *InvalidStateError) Error() string { return e.Msg }

// InvalidState builds an InvalidStateError.
func InvalidState(msg string) error { return &InvalidStateError{Msg: msg} }

// ValidationError indicates malformed input, identifying the offending field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError for a field.
func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// ErrConcurrencyConflict signals that a concurrent modification was detected
// during an atomic sequence. It is the only error class retried automatically
// (a bounded number of times) before surfacing.
var ErrConcurrencyConflict = errors.New("la operación entró en conflicto con otra modificación concurrente")
