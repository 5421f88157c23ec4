package domain

import (
	"github.com/allisson/identity/internal/errors"
)

// API key errors.
var (
	// ErrAPIKeyNotFound indicates an API key with the specified ID was not
	// found.
	ErrAPIKeyNotFound = errors.Wrap(errors.ErrNotFound, "api key not found")
)
