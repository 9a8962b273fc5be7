package tasks

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a name is empty after trimming.
	ErrEmptyName = errors.New("task name is empty")

	// ErrNotFound is returned when the target task is not in the expected list.
	ErrNotFound = errors.New("task not found")

	// ErrBusy is returned when another operation on the same task is in flight.
	ErrBusy = errors.New("task has an operation in flight")

	// ErrNotEditing is returned by CommitEdit outside edit mode.
	ErrNotEditing = errors.New("no task is being edited")
)

// Op names a controller operation.
type Op string

const (
	OpLoad       Op = "load"
	OpCreate     Op = "create"
	OpSoftDelete Op = "soft-delete"
	OpRestore    Op = "restore"
	OpRename     Op = "rename"
	OpPurge      Op = "purge"
	OpClear      Op = "clear"
)

// RemoteError is the single remote failure kind. Network errors, bad
// statuses and malformed responses are not told apart.
type RemoteError struct {
	Op  Op
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsRemote reports whether err is a remote failure.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
