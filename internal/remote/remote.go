// Package remote defines the backend-agnostic contract for the tasks collection.
package remote

import (
	"context"
	"errors"
)

// ErrAuth marks errors caused by missing or rejected credentials.
// Backends wrap it so callers can tell auth failures from other errors.
var ErrAuth = errors.New("auth error")

// Store is the remote tasks collection.
// All backend calls go through this interface.
// The controller never imports a backend package directly.
type Store interface {
	// List returns every record in the collection.
	// Records may lack fields; callers filter them.
	List(ctx context.Context) ([]Record, error)

	// Create creates a record and returns it with its server-assigned ID.
	Create(ctx context.Context, name string, active bool) (Record, error)

	// Update applies a partial change to a record.
	// Only non-nil fields of p are sent.
	Update(ctx context.Context, id string, p Patch) (Record, error)

	// Delete removes a record permanently.
	Delete(ctx context.Context, id string) error
}
