// Package main is the entry point for the taskorg CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskorg/internal/backend/googletasks"
	"taskorg/internal/backend/rest"
	"taskorg/internal/cli"
	"taskorg/internal/commands"
	"taskorg/internal/config"
	"taskorg/internal/remote"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newStore)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newStore picks the backend named in the settings.
func newStore(ctx context.Context, cfg *config.Config) (remote.Store, error) {
	switch name := cfg.Settings.BackendName(); name {
	case config.BackendREST:
		return rest.New(cfg.Settings.REST, cfg.Log()), nil
	case config.BackendGoogleTasks:
		return googletasks.New(ctx, cfg, cfg.Log())
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
