package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"taskorg/internal/remote"
)

// DefaultPurgeConcurrency bounds the deletes issued by ClearDeleted.
const DefaultPurgeConcurrency = 4

// Controller is the task lifecycle controller. It mirrors the remote
// collection in a Store and changes the mirror only after the remote store
// has confirmed a mutation.
//
// Remote calls run without holding the lock; their results are applied under
// it, so concurrent callers never observe a half-applied change. While a call
// for a task is in flight, further mutations of that task are rejected with
// ErrBusy.
type Controller struct {
	remote           remote.Store
	notifier         Notifier
	logger           *slog.Logger
	purgeConcurrency int

	mu      sync.Mutex
	store   Store
	pending map[string]Op
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the notifier that receives operation outcomes.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPurgeConcurrency sets how many deletes ClearDeleted runs at once.
func WithPurgeConcurrency(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.purgeConcurrency = n
		}
	}
}

// NewController creates a controller over a remote store. The mirror starts
// empty; call Load to fill it.
func NewController(rs remote.Store, opts ...Option) *Controller {
	c := &Controller{
		remote:           rs,
		notifier:         Discard,
		logger:           slog.New(slog.DiscardHandler),
		purgeConcurrency: DefaultPurgeConcurrency,
		pending:          make(map[string]Op),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the whole collection and replaces the mirror with it.
// Records missing a name or an active flag are dropped silently.
func (c *Controller) Load(ctx context.Context) error {
	records, err := c.remote.List(ctx)
	if err != nil {
		return c.fail(OpLoad, "", MsgFetchFailed, err)
	}

	loaded := make([]Task, 0, len(records))
	for _, r := range records {
		if t, ok := FromRecord(r); ok {
			loaded = append(loaded, t)
		}
	}

	c.mu.Lock()
	c.store.Replace(loaded)
	c.mu.Unlock()

	c.logger.Debug("tasks loaded", "records", len(records), "kept", len(loaded))
	return nil
}

// Create adds a task named name. On success the add-task input is cleared.
func (c *Controller) Create(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		c.notify(SeverityError, MsgEmptyTask)
		return ErrEmptyName
	}

	rec, err := c.remote.Create(ctx, name, true)
	if err == nil && strings.TrimSpace(rec.ID) == "" {
		err = errors.New("created record has no id")
	}
	if err != nil {
		return c.fail(OpCreate, "", MsgAddFailed, err)
	}

	// The request asked for an active task; the echo's flag is not trusted.
	t := Task{ID: rec.ID, Name: name, Active: true}
	if rec.Name != nil && *rec.Name != "" {
		t.Name = *rec.Name
	}

	c.mu.Lock()
	if !c.store.Append(t) {
		c.logger.Warn("created task already mirrored", "id", t.ID)
	}
	c.store.Input = ""
	c.mu.Unlock()

	c.logger.Debug("task created", "id", t.ID)
	c.notify(SeveritySuccess, MsgAdded)
	return nil
}

// SoftDelete moves an active task to the deleted list.
func (c *Controller) SoftDelete(ctx context.Context, id string) error {
	return c.setActive(ctx, id, false)
}

// Restore moves a deleted task back to the active list.
func (c *Controller) Restore(ctx context.Context, id string) error {
	return c.setActive(ctx, id, true)
}

func (c *Controller) setActive(ctx context.Context, id string, active bool) error {
	op, from := OpSoftDelete, ActiveList
	okSev, okMsg, failMsg := SeverityInfo, MsgSoftDeleted, MsgDeleteFailed
	if active {
		op, from = OpRestore, DeletedList
		okSev, okMsg, failMsg = SeveritySuccess, MsgRestored, MsgRestoreFailed
	}

	if err := c.begin(op, id, from); err != nil {
		return c.reject(err)
	}
	if _, err := c.remote.Update(ctx, id, remote.Patch{Active: remote.Bool(active)}); err != nil {
		c.finish(id, nil)
		return c.fail(op, id, failMsg, err)
	}
	c.finish(id, func(s *Store) {
		s.SetActive(id, active)
	})

	c.logger.Debug("task moved", "op", op, "id", id)
	c.notify(okSev, okMsg)
	return nil
}

// Rename changes an active task's name. On success edit mode ends; on
// failure edit mode is kept and the draft holds the attempted name.
func (c *Controller) Rename(ctx context.Context, id, newName string) error {
	if strings.TrimSpace(newName) == "" {
		c.notify(SeverityError, MsgEmptyName)
		return ErrEmptyName
	}
	if err := c.begin(OpRename, id, ActiveList); err != nil {
		return c.reject(err)
	}

	if _, err := c.remote.Update(ctx, id, remote.Patch{Name: remote.String(newName)}); err != nil {
		c.finish(id, func(s *Store) {
			if e, ok := s.Editing(); ok && e.ID == id {
				s.SetDraft(newName)
			}
		})
		return c.fail(OpRename, id, MsgUpdateFailed, err)
	}
	c.finish(id, func(s *Store) {
		s.Rename(id, newName)
		if e, ok := s.Editing(); ok && e.ID == id {
			s.CancelEdit()
		}
	})

	c.logger.Debug("task renamed", "id", id)
	c.notify(SeveritySuccess, MsgUpdated)
	return nil
}

// CommitEdit renames the task in edit mode to the current draft.
func (c *Controller) CommitEdit(ctx context.Context) error {
	c.mu.Lock()
	e, ok := c.store.Editing()
	c.mu.Unlock()
	if !ok {
		c.notify(SeverityError, MsgNotEditing)
		return ErrNotEditing
	}
	return c.Rename(ctx, e.ID, e.Draft)
}

// Purge permanently deletes a task from the deleted list.
func (c *Controller) Purge(ctx context.Context, id string) error {
	if err := c.begin(OpPurge, id, DeletedList); err != nil {
		return c.reject(err)
	}
	if err := c.remote.Delete(ctx, id); err != nil {
		c.finish(id, nil)
		return c.fail(OpPurge, id, MsgPurgeFailed, err)
	}
	c.finish(id, func(s *Store) {
		s.Remove(id)
	})

	c.logger.Debug("task purged", "id", id)
	c.notify(SeveritySuccess, MsgPurged)
	return nil
}

// ClearDeleted purges every task in the deleted list. Tasks whose delete
// fails stay in the list; the returned error joins their failures.
// Tasks with an operation already in flight are skipped.
func (c *Controller) ClearDeleted(ctx context.Context) error {
	c.mu.Lock()
	var ids []string
	for _, t := range c.store.Deleted() {
		if _, busy := c.pending[t.ID]; busy {
			continue
		}
		c.pending[t.ID] = OpClear
		ids = append(ids, t.ID)
	}
	c.mu.Unlock()

	if len(ids) == 0 {
		c.notify(SeverityInfo, MsgNothingToClear)
		return nil
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(c.purgeConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = c.remote.Delete(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	c.mu.Lock()
	for i, id := range ids {
		delete(c.pending, id)
		if errs[i] != nil {
			failed = append(failed, fmt.Errorf("%s: %w", id, errs[i]))
			continue
		}
		c.store.Remove(id)
	}
	c.mu.Unlock()

	if len(failed) > 0 {
		err := errors.Join(failed...)
		c.logger.Warn("remote operation failed", "op", OpClear, "failed", len(failed), "total", len(ids), "err", err)
		c.notify(SeverityError, fmt.Sprintf("Failed to delete %d task(s) permanently!", len(failed)))
		return &RemoteError{Op: OpClear, Err: err}
	}

	c.logger.Debug("deleted list cleared", "count", len(ids))
	c.notify(SeveritySuccess, MsgCleared)
	return nil
}

// HideDeleted empties the deleted list locally without touching the remote
// store. The records come back on the next Load.
func (c *Controller) HideDeleted() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.HideDeleted()
}

// Reorder applies a drag within one list. It never calls the remote store
// and the new order is lost on the next Load.
func (c *Controller) Reorder(ev ReorderEvent) bool {
	if ev.SourceList != ev.DestList {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Move(ev.SourceList, ev.Source, ev.Dest)
}

// SetInput replaces the add-task input text.
func (c *Controller) SetInput(s string) {
	c.mu.Lock()
	c.store.Input = s
	c.mu.Unlock()
}

// SetSearch replaces the search text.
func (c *Controller) SetSearch(s string) {
	c.mu.Lock()
	c.store.Search = s
	c.mu.Unlock()
}

// BeginEdit enters edit mode for an active task.
func (c *Controller) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.store.BeginEdit(id) {
		return ErrNotFound
	}
	return nil
}

// SetDraft replaces the edit draft.
func (c *Controller) SetDraft(s string) {
	c.mu.Lock()
	c.store.SetDraft(s)
	c.mu.Unlock()
}

// CancelEdit leaves edit mode without renaming.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.store.CancelEdit()
	c.mu.Unlock()
}

// State is a copy of the controller state.
type State struct {
	Tasks   []Task
	Deleted []Task
	Input   string
	Search  string
	Editing *Edit
}

// State returns a snapshot of the mirror and the UI fields.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		Tasks:   c.store.Active(),
		Deleted: c.store.Deleted(),
		Input:   c.store.Input,
		Search:  c.store.Search,
	}
	if e, ok := c.store.Editing(); ok {
		st.Editing = &e
	}
	return st
}

// View returns both lists filtered by the current search.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Project(&c.store)
}

// Lookup returns the task at position n (0-based) of list l.
func (c *Controller) Lookup(l List, n int) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Lookup(l, n)
}

// Pending reports whether a remote call for id is in flight.
func (c *Controller) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// begin checks that id is in list l and marks it pending.
func (c *Controller) begin(op Op, id string, l List) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.store.Find(id); !ok || t.Active != l.active() {
		return ErrNotFound
	}
	if _, busy := c.pending[id]; busy {
		return ErrBusy
	}
	c.pending[id] = op
	return nil
}

// finish clears the pending mark of id and applies a confirmed change.
// A change whose task was moved or dropped by a Load meanwhile applies nothing.
func (c *Controller) finish(id string, apply func(s *Store)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
	if apply != nil {
		apply(&c.store)
	}
}

func (c *Controller) reject(err error) error {
	if errors.Is(err, ErrBusy) {
		c.notify(SeverityInfo, MsgBusy)
	} else {
		c.notify(SeverityError, MsgNotFound)
	}
	return err
}

func (c *Controller) fail(op Op, id, msg string, err error) error {
	c.logger.Warn("remote operation failed", "op", op, "id", id, "err", err)
	c.notify(SeverityError, msg)
	return &RemoteError{Op: op, Err: err}
}

func (c *Controller) notify(sev Severity, msg string) {
	c.notifier.Notify(Notification{Severity: sev, Message: msg})
}
