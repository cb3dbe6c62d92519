package repository

import "errors"

// Errors shared by all repository implementations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates a write violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Resource-specific aliases, kept distinct so call sites read naturally.
var (
	ErrUserNotFound = ErrNotFound
	ErrPostNotFound = ErrNotFound
)
