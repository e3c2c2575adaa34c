package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrUnavailable indicates the graph store could not be reached.
	ErrUnavailable = errors.New("graph store unavailable")

	// ErrWriteNotConfirmed indicates a write transaction returned no created node.
	ErrWriteNotConfirmed = errors.New("write not confirmed by store")

	// ErrClosed indicates the store has already been shut down.
	ErrClosed = errors.New("store closed")
)
