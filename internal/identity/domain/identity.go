// Package domain defines the identity entity and its invariants.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an authenticatable principal. The identifier is unique and
// immutable after creation; the password is stored only as a hash.
type Identity struct {
	ID             uuid.UUID
	Identifier     string
	HashedPassword string
	Disabled       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
