package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskorg/internal/config"
	"taskorg/internal/remote"
	"taskorg/internal/tasks"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct{}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return []string{"edit"} }
func (c *RenameCmd) Synopsis() string  { return "Rename a task" }
func (c *RenameCmd) Usage() string     { return "taskorg rename <ref> <name...>" }
func (c *RenameCmd) NeedsRemote() bool { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, store, args, tasks.ActiveList, out, errOut,
		func(ctrl *tasks.Controller, t tasks.Task, rest []string) error {
			if err := ctrl.BeginEdit(t.ID); err != nil {
				return err
			}
			ctrl.SetDraft(strings.Join(rest, " "))
			return ctrl.CommitEdit(ctx)
		})
}
