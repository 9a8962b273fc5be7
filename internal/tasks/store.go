package tasks

import "slices"

// Edit is the in-place edit target and its uncommitted draft.
type Edit struct {
	ID    string
	Draft string
}

// Store holds the local mirror and the transient UI state.
//
// All tasks live in one ordered collection; the active and deleted lists are
// order-preserving partitions of it on Task.Active. Moving a task between
// lists flips the flag and moves it to the end of the collection, which is
// the end of its target list.
//
// Store performs no I/O and is not safe for concurrent use.
type Store struct {
	items []Task

	// Input is the add-task text.
	Input string
	// Search is the filter applied to both lists.
	Search string

	editing *Edit
}

// Replace swaps the whole collection. Later duplicates of an id are dropped.
func (s *Store) Replace(tasks []Task) {
	seen := make(map[string]struct{}, len(tasks))
	items := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		items = append(items, t)
	}
	s.items = items
	s.fixEdit()
}

// Append adds a task at the end of its list.
// It returns false if the id is already present.
func (s *Store) Append(t Task) bool {
	if s.index(t.ID) >= 0 {
		return false
	}
	s.items = append(s.items, t)
	return true
}

// SetActive moves a task to the end of the list selected by active.
// It returns false if the task is missing or already in that list.
func (s *Store) SetActive(id string, active bool) bool {
	i := s.index(id)
	if i < 0 || s.items[i].Active == active {
		return false
	}
	t := s.items[i]
	t.Active = active
	s.items = append(slices.Delete(s.items, i, i+1), t)
	s.fixEdit()
	return true
}

// Rename replaces a task's name in place.
func (s *Store) Rename(id, name string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Name = name
	return true
}

// Remove drops a task from the collection.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.fixEdit()
	return true
}

// HideDeleted drops every inactive task and returns how many were dropped.
func (s *Store) HideDeleted() int {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(t Task) bool { return !t.Active })
	return before - len(s.items)
}

// Move permutes one list: the task at position from is reinserted at
// position to. Positions are indexes into l, not into the collection.
func (s *Store) Move(l List, from, to int) bool {
	pos := s.positions(l)
	if from == to || from < 0 || to < 0 || from >= len(pos) || to >= len(pos) {
		return false
	}
	sub := make([]Task, len(pos))
	for i, p := range pos {
		sub[i] = s.items[p]
	}
	t := sub[from]
	sub = slices.Insert(slices.Delete(sub, from, from+1), to, t)
	for i, p := range pos {
		s.items[p] = sub[i]
	}
	return true
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.items[i], true
}

// Lookup returns the task at position n of list l.
func (s *Store) Lookup(l List, n int) (Task, bool) {
	pos := s.positions(l)
	if n < 0 || n >= len(pos) {
		return Task{}, false
	}
	return s.items[pos[n]], true
}

// Active returns a copy of the active list in order.
func (s *Store) Active() []Task { return s.list(ActiveList) }

// Deleted returns a copy of the deleted list in order.
func (s *Store) Deleted() []Task { return s.list(DeletedList) }

// Len returns the number of tasks in both lists.
func (s *Store) Len() int { return len(s.items) }

// BeginEdit enters edit mode for an active task, seeding the draft with its
// current name.
func (s *Store) BeginEdit(id string) bool {
	i := s.index(id)
	if i < 0 || !s.items[i].Active {
		return false
	}
	s.editing = &Edit{ID: id, Draft: s.items[i].Name}
	return true
}

// SetDraft replaces the draft text. It is a no-op outside edit mode.
func (s *Store) SetDraft(draft string) {
	if s.editing != nil {
		s.editing.Draft = draft
	}
}

// CancelEdit leaves edit mode.
func (s *Store) CancelEdit() { s.editing = nil }

// Editing returns the current edit target.
func (s *Store) Editing() (Edit, bool) {
	if s.editing == nil {
		return Edit{}, false
	}
	return *s.editing, true
}

// fixEdit leaves edit mode when its target is no longer an active task.
func (s *Store) fixEdit() {
	if s.editing == nil {
		return
	}
	if i := s.index(s.editing.ID); i < 0 || !s.items[i].Active {
		s.editing = nil
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(t Task) bool { return t.ID == id })
}

func (s *Store) positions(l List) []int {
	var pos []int
	for i, t := range s.items {
		if t.Active == l.active() {
			pos = append(pos, i)
		}
	}
	return pos
}

func (s *Store) list(l List) []Task {
	out := make([]Task, 0, len(s.items))
	for _, t := range s.items {
		if t.Active == l.active() {
			out = append(out, t)
		}
	}
	return out
}
