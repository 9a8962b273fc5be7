package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/remote"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskorg help" }
func (c *HelpCmd) NeedsRemote() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-18s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  taskorg                                     List tasks and recently deleted tasks
  taskorg list [common flags] [--search <text>] [text...]
  taskorg add [common flags] <name...>
  taskorg create [common flags] <name...>
  taskorg rm [common flags] <ref>             Move a task to Recently Deleted
  taskorg delete [common flags] <ref>
  taskorg restore [common flags] <dN>         Bring a task back from Recently Deleted
  taskorg undo [common flags] <dN>
  taskorg rename [common flags] <ref> <name...>
  taskorg edit [common flags] <ref> <name...>
  taskorg purge [common flags] <dN>           Permanently delete one task
  taskorg clear [common flags]                Permanently delete all of Recently Deleted
  taskorg tui [common flags]                  Interactive mode
  taskorg login [common flags]
  taskorg logout [common flags]
  taskorg help
  taskorg version

References:
  N                Nth task of My Tasks
  dN, d N          Nth task of Recently Deleted

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
