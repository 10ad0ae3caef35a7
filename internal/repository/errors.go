package repository

import "errors"

var (
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("repository: unique constraint violated")
	// ErrMissingReference is returned when a write references a row that no longer exists.
	ErrMissingReference = errors.New("repository: referenced row missing")
)
