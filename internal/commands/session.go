package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/notify"
	"taskorg/internal/output"
	"taskorg/internal/remote"
	"taskorg/internal/tasks"
)

// openController builds a controller that reports to out/errOut (and to the
// run logger under --debug), then loads the collection. On failure the
// returned code is non-zero and the controller is nil.
func openController(ctx context.Context, cfg *config.Config, store remote.Store, out, errOut io.Writer) (*tasks.Controller, int) {
	var notifier tasks.Notifier = notify.NewWriter(out, errOut, cfg.Quiet)
	if cfg.Debug {
		notifier = notify.Multi(notifier, notify.NewLog(cfg.Log()))
	}
	ctrl := tasks.NewController(store,
		tasks.WithLogger(cfg.Log()),
		tasks.WithNotifier(notifier),
		tasks.WithPurgeConcurrency(cfg.Settings.PurgeConcurrency),
	)
	if err := ctrl.Load(ctx); err != nil {
		return nil, report(errOut, err)
	}
	return ctrl, exitcode.Success
}

// report maps an operation error to an exit code. The controller has already
// printed the user-facing message; auth errors also get their cause so the
// login hint is visible.
func report(errOut io.Writer, err error) int {
	if errors.Is(err, remote.ErrAuth) {
		var re *tasks.RemoteError
		if errors.As(err, &re) {
			err = re.Err
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.FromError(err)
}

// lookupTask resolves a task reference against the loaded lists.
func lookupTask(ctrl *tasks.Controller, ref TaskRef, errOut io.Writer) (tasks.Task, bool) {
	t, ok := ctrl.Lookup(ref.List, ref.TaskNum-1)
	if !ok {
		fmt.Fprintf(errOut, "error: task number out of range: %s\n", ref)
		return tasks.Task{}, false
	}
	return t, true
}

// parseRef parses a task reference and prints parse errors.
func parseRef(args []string, errOut io.Writer) (TaskRef, []string, bool) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return TaskRef{}, nil, false
	}
	return ref, rest, true
}

func sectionTitle(l tasks.List) string {
	if l == tasks.DeletedList {
		return output.DeletedTitle
	}
	return output.ActiveTitle
}
