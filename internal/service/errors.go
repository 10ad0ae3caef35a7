package service

import "errors"

// Error kinds shared by every service. Callers match them with errors.Is;
// returned errors may wrap them with more context.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidParent = errors.New("invalid parent")
	ErrCycleDetected = errors.New("move would create a cycle")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrUpstream      = errors.New("upstream failure")
)
