// Package tasks implements the task lifecycle: the in-memory mirror of the
// remote collection, the confirmation-gated operations that change it, and the
// filtered views rendered by the presentation layers.
package tasks

import (
	"strings"

	"taskorg/internal/remote"
)

// Task is a confirmed task as mirrored locally.
type Task struct {
	ID     string
	Name   string
	Active bool
}

// List identifies one of the two task lists.
type List int

const (
	// ActiveList holds tasks with Active set.
	ActiveList List = iota
	// DeletedList holds soft-deleted tasks.
	DeletedList
)

func (l List) String() string {
	switch l {
	case ActiveList:
		return "tasks"
	case DeletedList:
		return "deleted"
	default:
		return "unknown"
	}
}

// active reports the Active flag of tasks in l.
func (l List) active() bool { return l == ActiveList }

// FromRecord converts a remote record into a Task.
// Records without an id, without a non-empty name or without an active flag
// are rejected.
func FromRecord(r remote.Record) (Task, bool) {
	if strings.TrimSpace(r.ID) == "" || r.Name == nil || *r.Name == "" || r.Active == nil {
		return Task{}, false
	}
	return Task{ID: r.ID, Name: *r.Name, Active: *r.Active}, true
}
