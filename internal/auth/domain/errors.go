package domain

import (
	"github.com/allisson/identity/internal/errors"
)

// Authorization errors.
var (
	// ErrInvalidCredentials indicates authentication failed. Unknown
	// principals, wrong passwords and disabled principals all map here so the
	// response does not leak which one it was.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a malformed, tampered or expired access token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrPermissionNotFound indicates a permission name outside the catalog.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")
)

// NewPermissionNotFoundError returns an ErrPermissionNotFound naming the
// offending permission.
func NewPermissionNotFoundError(name string) error {
	return errors.Wrapf(ErrPermissionNotFound, "unknown permission %q", name)
}
