package repository

import "errors"

// Sentinel kinds for history errors.
var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidLimit = errors.New("invalid history limit")
	ErrInvalidID    = errors.New("session id must not be empty")
)
