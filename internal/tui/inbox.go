package tui

import (
	"sync"

	"taskorg/internal/tasks"
)

// inbox collects notifications raised while commands run off the UI
// goroutine. The model drains it when a command completes.
type inbox struct {
	mu    sync.Mutex
	items []tasks.Notification
}

func (b *inbox) Notify(n tasks.Notification) {
	b.mu.Lock()
	b.items = append(b.items, n)
	b.mu.Unlock()
}

func (b *inbox) drain() []tasks.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.items
	b.items = nil
	return items
}
