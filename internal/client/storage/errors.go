package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that the entity record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrMutationNotFound indicates that the queued mutation was not found
	ErrMutationNotFound = errors.New("queued mutation not found")

	// ErrCorrupted indicates that stored data failed to decode
	ErrCorrupted = errors.New("stored data is corrupted")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
