package domain

import (
	"github.com/allisson/identity/internal/errors"
)

// Identity errors.
var (
	// ErrIdentityNotFound indicates an identity with the specified ID or
	// identifier was not found.
	ErrIdentityNotFound = errors.Wrap(errors.ErrNotFound, "identity not found")

	// ErrIdentityAlreadyExists indicates an identity with the same identifier
	// already exists.
	ErrIdentityAlreadyExists = errors.Wrap(errors.ErrConflict, "identity already exists")
)
