// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskorg/internal/remote"
	"taskorg/internal/tasks"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, empty name).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError maps an operation error to an exit code.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, remote.ErrAuth):
		return AuthError
	case errors.Is(err, tasks.ErrEmptyName),
		errors.Is(err, tasks.ErrNotFound),
		errors.Is(err, tasks.ErrBusy),
		errors.Is(err, tasks.ErrNotEditing):
		return UserError
	default:
		return BackendError
	}
}
