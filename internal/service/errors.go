package service

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrEventNotFound   = errors.New("event not found")

	// ErrForbidden means the actor is known but not allowed to perform
	// this transition on this booking.
	ErrForbidden = errors.New("actor is not allowed to perform this operation")

	// ErrInvalidDecision rejects decision values outside confirmed/rejected.
	ErrInvalidDecision = errors.New("decision must be 'confirmed' or 'rejected'")

	// ErrInvalidState is the root of all state-precondition failures:
	// resolving a non-pending booking, cancelling after the event started,
	// or confirming against an exhausted capacity ledger. Callers match it
	// with errors.Is; the wrapped message names the offending state.
	ErrInvalidState = errors.New("operation not valid for current state")
)
