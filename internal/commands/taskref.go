package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"taskorg/internal/tasks"
)

// deletedLetter marks references into the deleted list.
const deletedLetter = "d"

// TaskRef represents a parsed task reference.
type TaskRef struct {
	List    tasks.List // ActiveList or DeletedList
	TaskNum int        // 1-based task number
}

func (r TaskRef) String() string {
	if r.List == tasks.DeletedList {
		return deletedLetter + strconv.Itoa(r.TaskNum)
	}
	return strconv.Itoa(r.TaskNum)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the front of args and returns the
// arguments that follow it.
//
// Parsing rules:
//  1. first arg all digits (e.g. 3) → active list
//  2. first arg "d<digits>" (e.g. d2) → deleted list
//  3. first arg "d" and second arg all digits (d 2) → deleted list
//  4. first arg "d" with no second arg → error: task reference required
//  5. otherwise → error: invalid task reference: <ref>
//
// Numbers below 1 are rejected as out of range.
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := args[0]
	var (
		ref    TaskRef
		digits string
		rest   = args[1:]
	)
	switch {
	case isAllDigits(first):
		ref.List, digits = tasks.ActiveList, first
	case len(first) > 1 && first[:1] == deletedLetter && isAllDigits(first[1:]):
		ref.List, digits = tasks.DeletedList, first[1:]
	case first == deletedLetter:
		if len(args) < 2 {
			return TaskRef{}, nil, ErrTaskRefRequired
		}
		if !isAllDigits(args[1]) {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s %s", first, args[1])
		}
		ref.List, digits, rest = tasks.DeletedList, args[1], args[2:]
	default:
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}

	num, err := strconv.Atoi(digits)
	if err != nil {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}
	ref.TaskNum = num
	if num < 1 {
		return TaskRef{}, nil, fmt.Errorf("task number out of range: %s", ref)
	}
	return ref, rest, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
