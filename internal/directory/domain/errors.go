package domain

import (
	"github.com/allisson/identity/internal/errors"
)

// Directory errors.
var (
	// ErrDomainNotFound indicates a domain with the specified ID or name was not found.
	ErrDomainNotFound = errors.Wrap(errors.ErrNotFound, "domain not found")

	// ErrDomainAlreadyExists indicates a domain with the same name already exists.
	ErrDomainAlreadyExists = errors.Wrap(errors.ErrConflict, "domain already exists")

	// ErrRoleNotFound indicates a role with the specified ID was not found.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrRoleAlreadyExists indicates a role with the same name already exists
	// within the same domain partition.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")
)
