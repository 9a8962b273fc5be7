package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/output"
	"taskorg/internal/remote"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskorg` (no args) and `taskorg list [--search <text>]`.
type ListCmd struct {
	search string
}

// SetSearch sets the search text (for testing).
func (c *ListCmd) SetSearch(s string) {
	c.search = s
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks and recently deleted tasks" }
func (c *ListCmd) Usage() string     { return "taskorg list [--search <text>] [text...]" }
func (c *ListCmd) NeedsRemote() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	search := c.search
	if search == "" {
		search = strings.Join(args, " ")
	}

	ctrl, code := openController(ctx, cfg, store, out, errOut)
	if ctrl == nil {
		return code
	}
	ctrl.SetSearch(search)

	if output.FormatView(out, ctrl.View()) == 0 && !cfg.Quiet {
		if search != "" {
			fmt.Fprintln(out, "no matching tasks")
		} else {
			fmt.Fprintln(out, "no tasks found")
		}
	}
	return exitcode.Success
}
