// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"taskorg/internal/remote"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// ErrInjected is a convenience error for failure injection.
var ErrInjected = errors.New("injected failure")

// FakeStore is an in-memory implementation of remote.Store for testing.
type FakeStore struct {
	mu      sync.RWMutex
	records []remote.Record
	calls   map[string]int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// DeleteErrFor fails Delete for specific ids.
	DeleteErrFor map[string]error

	// Hold, when set, is called at the start of every call. Tests use it to
	// block a call while they act on the controller.
	Hold func(op, id string)
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		calls:        make(map[string]int),
		DeleteErrFor: make(map[string]error),
	}
}

// AddTask adds a complete record.
func (f *FakeStore) AddTask(id, name string, active bool) {
	f.AddRecord(remote.NewRecord(id, name, active))
}

// AddRecord adds a raw record, which may lack fields.
func (f *FakeStore) AddRecord(r remote.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
}

// Record returns the stored record for id.
func (f *FakeStore) Record(id string) (remote.Record, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.index(id)
	if i < 0 {
		return remote.Record{}, false
	}
	return f.records[i], true
}

// Calls returns how many times op ("list", "create", "update", "delete") ran.
func (f *FakeStore) Calls(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls of any kind.
func (f *FakeStore) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// List implements remote.Store.
func (f *FakeStore) List(ctx context.Context) ([]remote.Record, error) {
	f.enter("list", "")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]remote.Record, len(f.records))
	copy(result, f.records)
	return result, nil
}

// Create implements remote.Store.
func (f *FakeStore) Create(ctx context.Context, name string, active bool) (remote.Record, error) {
	f.enter("create", "")
	if f.CreateErr != nil {
		return remote.Record{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	r := remote.NewRecord(uuid.NewString(), name, active)
	f.records = append(f.records, r)
	return r, nil
}

// Update implements remote.Store.
func (f *FakeStore) Update(ctx context.Context, id string, p remote.Patch) (remote.Record, error) {
	f.enter("update", id)
	if f.UpdateErr != nil {
		return remote.Record{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return remote.Record{}, ErrNotFound
	}
	if p.Name != nil {
		f.records[i].Name = remote.String(*p.Name)
	}
	if p.Active != nil {
		f.records[i].Active = remote.Bool(*p.Active)
	}
	return f.records[i], nil
}

// Delete implements remote.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.enter("delete", id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.DeleteErrFor[id]; err != nil {
		return err
	}
	i := f.index(id)
	if i < 0 {
		return ErrNotFound
	}
	f.records = append(f.records[:i], f.records[i+1:]...)
	return nil
}

func (f *FakeStore) enter(op, id string) {
	f.mu.Lock()
	f.calls[op]++
	hold := f.Hold
	f.mu.Unlock()
	if hold != nil {
		hold(op, id)
	}
}

func (f *FakeStore) index(id string) int {
	for i, r := range f.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
