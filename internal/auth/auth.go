package auth

import (
	"context"
	"errors"

	"skystash/internal/model"
)

// Common errors returned by identity gate implementations.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnavailable       = errors.New("identity provider unavailable")
)

// Verifier turns a bearer credential into the authenticated user's stable id.
type Verifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// Directory resolves identities known to the identity provider.
type Directory interface {
	// LookupByID returns ErrUserNotFound when the id is unknown.
	LookupByID(ctx context.Context, id string) (*model.User, error)
	// LookupByEmail returns ErrUserNotFound when no user has the email.
	LookupByEmail(ctx context.Context, email string) (*model.User, error)
}
