package commands

import (
	"context"
	"flag"
	"io"

	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/remote"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Permanently delete everything in Recently Deleted" }
func (c *ClearCmd) Usage() string     { return "taskorg clear" }
func (c *ClearCmd) NeedsRemote() bool { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	ctrl, code := openController(ctx, cfg, store, out, errOut)
	if ctrl == nil {
		return code
	}
	if err := ctrl.ClearDeleted(ctx); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
