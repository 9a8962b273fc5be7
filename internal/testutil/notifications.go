package testutil

import (
	"sync"

	"taskorg/internal/tasks"
)

// Recorder is a tasks.Notifier that keeps every notification.
type Recorder struct {
	mu    sync.Mutex
	items []tasks.Notification
}

// Notify implements tasks.Notifier.
func (r *Recorder) Notify(n tasks.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns the recorded notifications in order.
func (r *Recorder) All() []tasks.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tasks.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (tasks.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return tasks.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset forgets recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
