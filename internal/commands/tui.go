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
	"taskorg/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd starts the interactive UI. Its logs go to the log file.
type TUICmd struct{}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return []string{"ui"} }
func (c *TUICmd) Synopsis() string  { return "Interactive mode" }
func (c *TUICmd) Usage() string     { return "taskorg tui [common flags]" }
func (c *TUICmd) NeedsRemote() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

// LogsToFile implements FileLogger.
func (c *TUICmd) LogsToFile() bool { return true }

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	logger := cfg.Log()
	logger.Info("interactive session started", "backend", cfg.Settings.BackendName())
	if err := tui.Run(ctx, store, logger, tasks.WithPurgeConcurrency(cfg.Settings.PurgeConcurrency)); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
