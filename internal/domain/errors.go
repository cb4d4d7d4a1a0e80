package domain

import "errors"

// Closed set of user-facing failures. Everything else is operational: it
// gets wrapped, logged and the enclosing loop keeps running.
var (
	ErrAlreadyExists   = errors.New("app already exists")
	ErrNotFound        = errors.New("app not found")
	ErrInvalidInterval = errors.New("interval must be a positive number of minutes")
)
