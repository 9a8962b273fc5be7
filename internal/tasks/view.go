package tasks

import (
	"strings"

	"golang.org/x/text/cases"
)

// Entry is a task in a filtered view. Index is its position in the unfiltered
// list, so references stay stable while a search is active.
type Entry struct {
	Index int
	Task  Task
}

// View is the pair of filtered lists rendered by a presentation layer.
type View struct {
	Search  string
	Tasks   []Entry
	Deleted []Entry
}

// Filter keeps the tasks whose name contains search, ignoring case.
// Source order is preserved; an empty search keeps everything.
func Filter(list []Task, search string) []Entry {
	fold := cases.Fold()
	needle := fold.String(search)
	out := make([]Entry, 0, len(list))
	for i, t := range list {
		if strings.Contains(fold.String(t.Name), needle) {
			out = append(out, Entry{Index: i, Task: t})
		}
	}
	return out
}

// Project derives both filtered lists from a store.
func Project(s *Store) View {
	return View{
		Search:  s.Search,
		Tasks:   Filter(s.Active(), s.Search),
		Deleted: Filter(s.Deleted(), s.Search),
	}
}

// ReorderEvent is a drag of one task from a source position to a destination
// position. Events whose lists differ are ignored.
type ReorderEvent struct {
	SourceList List
	Source     int
	DestList   List
	Dest       int
}
