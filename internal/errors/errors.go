package errors

import "errors"

// Common errors used throughout the application
var (
	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStoreClosed        = errors.New("store is closed")
	ErrNoteNotFound       = errors.New("note not found")
	ErrInvalidNoteID      = errors.New("invalid note ID")

	// Selection errors
	ErrInvalidSelection = errors.New("invalid selection")

	// Configuration errors
	ErrInvalidDeleteMode = errors.New("invalid delete mode (use content/id)")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
)
