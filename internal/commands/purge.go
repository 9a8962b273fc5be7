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
	Register(&PurgeCmd{})
}

// PurgeCmd implements the purge command.
type PurgeCmd struct{}

func (c *PurgeCmd) Name() string      { return "purge" }
func (c *PurgeCmd) Aliases() []string { return nil }
func (c *PurgeCmd) Synopsis() string  { return "Permanently delete a task from Recently Deleted" }
func (c *PurgeCmd) Usage() string     { return "taskorg purge <dN>" }
func (c *PurgeCmd) NeedsRemote() bool { return true }

func (c *PurgeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PurgeCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, store, args, tasks.DeletedList, out, errOut,
		func(ctrl *tasks.Controller, t tasks.Task, rest []string) error {
			return ctrl.Purge(ctx, t.ID)
		})
}
