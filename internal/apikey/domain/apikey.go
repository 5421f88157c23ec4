// Package domain defines the API key entity.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIKey is a machine principal. Its ID doubles as the secret presented on
// authentication, so keys are disabled rather than guessed at. Permissions
// hold the catalog permission names granted to the key.
type APIKey struct {
	ID          uuid.UUID
	Name        string
	Enabled     bool
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
