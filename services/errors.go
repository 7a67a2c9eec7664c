package services

import "errors"

// Service failure taxonomy. Controllers map these to HTTP status codes and
// machine-readable error codes; everything else is treated as an internal
// error.
var (
	// ErrNotFound is returned when an operation targets a record that does
	// not exist within the caller's company.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidOrder is returned for malformed or incomplete order drafts.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidEntry is returned for malformed ledger entries.
	ErrInvalidEntry = errors.New("invalid ledger entry")

	// ErrOrderFinalized is returned when a transition is attempted out of a
	// terminal order status (delivered or cancelled), or when editing an
	// order that is no longer pending.
	ErrOrderFinalized = errors.New("order already finalized")
)
