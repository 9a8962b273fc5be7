package commands

import (
	"context"
	"flag"
	"io"

	"taskorg/internal/config"
	"taskorg/internal/remote"
	"taskorg/internal/tasks"
)

func init() {
	Register(&RestoreCmd{})
}

// RestoreCmd implements the restore command.
type RestoreCmd struct{}

func (c *RestoreCmd) Name() string      { return "restore" }
func (c *RestoreCmd) Aliases() []string { return []string{"undo"} }
func (c *RestoreCmd) Synopsis() string  { return "Restore a task from Recently Deleted" }
func (c *RestoreCmd) Usage() string     { return "taskorg restore <dN>" }
func (c *RestoreCmd) NeedsRemote() bool { return true }

func (c *RestoreCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RestoreCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, store, args, tasks.DeletedList, out, errOut,
		func(ctrl *tasks.Controller, t tasks.Task, rest []string) error {
			return ctrl.Restore(ctx, t.ID)
		})
}
