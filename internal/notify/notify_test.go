package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"taskorg/internal/tasks"
)

func TestWriter_RoutesBySeverity(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewWriter(&out, &errOut, false)

	w.Notify(tasks.Notification{Severity: tasks.SeveritySuccess, Message: "Task added!"})
	w.Notify(tasks.Notification{Severity: tasks.SeverityInfo, Message: "Task moved to Recently Deleted."})
	w.Notify(tasks.Notification{Severity: tasks.SeverityError, Message: "Failed to add task!"})

	if got, want := out.String(), "Task added!\nTask moved to Recently Deleted.\n"; got != want {
		t.Errorf("stdout: expected %q, got %q", want, got)
	}
	if got, want := errOut.String(), "error: Failed to add task!\n"; got != want {
		t.Errorf("stderr: expected %q, got %q", want, got)
	}
}

func TestWriter_QuietKeepsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewWriter(&out, &errOut, true)

	w.Notify(tasks.Notification{Severity: tasks.SeveritySuccess, Message: "Task added!"})
	w.Notify(tasks.Notification{Severity: tasks.SeverityError, Message: "Task not found."})

	if out.String() != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", out.String())
	}
	if errOut.String() != "error: Task not found.\n" {
		t.Errorf("unexpected stderr %q", errOut.String())
	}
}

func TestLog_WritesRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	NewLog(logger).Notify(tasks.Notification{Severity: tasks.SeverityError, Message: "Failed to fetch tasks!"})

	line := buf.String()
	if !strings.Contains(line, "level=WARN") {
		t.Errorf("expected warn level, got %q", line)
	}
	if !strings.Contains(line, `message="Failed to fetch tasks!"`) {
		t.Errorf("expected message attribute, got %q", line)
	}
}

func TestMulti_FansOut(t *testing.T) {
	var got []string
	a := tasks.NotifierFunc(func(n tasks.Notification) { got = append(got, "a:"+n.Message) })
	b := tasks.NotifierFunc(func(n tasks.Notification) { got = append(got, "b:"+n.Message) })

	Multi(a, nil, b).Notify(tasks.Notification{Message: "x"})

	if strings.Join(got, ",") != "a:x,b:x" {
		t.Errorf("unexpected fan-out %v", got)
	}
}
