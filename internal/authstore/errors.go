package authstore

import "errors"

var (
	// ErrValidation indicates a remote statement that was rejected from materialized state.
	// It wraps the precise reason.
	ErrValidation = errors.New("statement validation failed")

	// ErrPermissionDenied indicates that the author lacks the capability for the action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnknownReference indicates a reference to a project, device or statement that is not accepted
	ErrUnknownReference = errors.New("unknown reference")

	// ErrUnresolvable indicates a pending statement dropped before its predecessors arrived
	ErrUnresolvable = errors.New("statement unresolvable")

	// ErrNotFound indicates that the requested statement or ownership record does not exist
	ErrNotFound = errors.New("not found")

	// ErrClosed indicates that the store is closed
	ErrClosed = errors.New("auth store is closed")
)
