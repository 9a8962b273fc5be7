package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/remote"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "taskorg add <name...>" }
func (c *AddCmd) NeedsRemote() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	ctrl, code := openController(ctx, cfg, store, out, errOut)
	if ctrl == nil {
		return code
	}

	// Join args to form the name; emptiness is checked by the controller.
	name := strings.Join(args, " ")
	ctrl.SetInput(name)
	if err := ctrl.Create(ctx, name); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
