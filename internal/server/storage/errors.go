package storage

import "errors"

// Common storage errors
var (
	// ErrEntityNotFound indicates that no row exists for a (type, id) pair
	ErrEntityNotFound = errors.New("entity not found")

	// ErrBadCursorToken indicates a watermark token the server cannot parse
	ErrBadCursorToken = errors.New("invalid cursor token")
)
