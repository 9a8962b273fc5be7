// Package notify provides tasks.Notifier implementations for the presentation
// layers.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"taskorg/internal/tasks"
)

// Writer prints notifications for the CLI.
// Errors go to errOut as "error: <msg>"; other severities go to out unless
// quiet is set.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewWriter creates a Writer.
func NewWriter(out, errOut io.Writer, quiet bool) *Writer {
	return &Writer{out: out, errOut: errOut, quiet: quiet}
}

// Notify implements tasks.Notifier.
func (w *Writer) Notify(n tasks.Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n.Severity == tasks.SeverityError {
		fmt.Fprintf(w.errOut, "error: %s\n", n.Message)
		return
	}
	if !w.quiet {
		fmt.Fprintln(w.out, n.Message)
	}
}

// Log records every notification on a logger.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log notifier.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Notify implements tasks.Notifier.
func (l *Log) Notify(n tasks.Notification) {
	level := slog.LevelInfo
	if n.Severity == tasks.SeverityError {
		level = slog.LevelWarn
	}
	l.logger.Log(context.Background(), level, "notification", "severity", n.Severity.String(), "message", n.Message)
}

// Multi fans a notification out to several notifiers in order.
func Multi(notifiers ...tasks.Notifier) tasks.Notifier {
	return tasks.NotifierFunc(func(n tasks.Notification) {
		for _, nt := range notifiers {
			if nt != nil {
				nt.Notify(n)
			}
		}
	})
}
