package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/remote"
	"taskorg/internal/tasks"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Removed tasks go to Recently Deleted.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Move a task to Recently Deleted" }
func (c *RmCmd) Usage() string     { return "taskorg rm <ref>" }
func (c *RmCmd) NeedsRemote() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, store, args, tasks.ActiveList, out, errOut,
		func(ctrl *tasks.Controller, t tasks.Task, rest []string) error {
			return ctrl.SoftDelete(ctx, t.ID)
		})
}

// runOnTask loads the collection, resolves the task reference at the front
// of args in list l and applies op to it. Bare numbers given to a command on
// the deleted list refer to that list.
func runOnTask(ctx context.Context, cfg *config.Config, store remote.Store, args []string, l tasks.List,
	out, errOut io.Writer, op func(ctrl *tasks.Controller, t tasks.Task, rest []string) error) int {
	ref, rest, ok := parseRef(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if l == tasks.DeletedList {
		ref.List = tasks.DeletedList
	}
	if ref.List != l {
		fmt.Fprintf(errOut, "error: %s is in %s\n", ref, sectionTitle(ref.List))
		return exitcode.UserError
	}

	ctrl, code := openController(ctx, cfg, store, out, errOut)
	if ctrl == nil {
		return code
	}
	t, ok := lookupTask(ctrl, ref, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := op(ctrl, t, rest); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
