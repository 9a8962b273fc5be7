package cli_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskorg/internal/cli"
	"taskorg/internal/commands"
	"taskorg/internal/config"
	"taskorg/internal/exitcode"
	"taskorg/internal/remote"
	"taskorg/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeStore.
func testFactory(store *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (remote.Store, error) {
		return store, nil
	}
}

func run(t *testing.T, factory cli.StoreFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	args = append(args, "--config", t.TempDir())
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	code := dispatcher.Run(context.Background(), []string{"--quiet", "list"}, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskorg 0.1.0\n" {
		t.Errorf("expected 'taskorg 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code := dispatcher.Run(context.Background(), []string{"list", "--search"}, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -search\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "Buy milk", true)

	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store))
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	code := dispatcher.Run(context.Background(), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "   1  Buy milk\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
}

func TestDispatcher_CommandAlias(t *testing.T) {
	store := testutil.NewFakeStore()
	stdout, _, code := run(t, testFactory(store), "create", "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Task added!\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if store.Calls("create") != 1 {
		t.Errorf("expected one create call, got %d", store.Calls("create"))
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	store := testutil.NewFakeStore()
	_, stderr, code := run(t, testFactory(store), "list", "--debug")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "backend ready") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_LoadFailure(t *testing.T) {
	store := testutil.NewFakeStore()
	store.ListErr = testutil.ErrInjected

	_, stderr, code := run(t, testFactory(store), "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: Failed to fetch tasks!\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryAuthError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (remote.Store, error) {
		return nil, fmt.Errorf("%w: not logged in (run: taskorg login)", remote.ErrAuth)
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryBackendError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (remote.Store, error) {
		return nil, errors.New("unreachable")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: unreachable\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	_, stderr, code := run(t, nil, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: no backend configured\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// screenCmd stands in for a command that owns the terminal.
type screenCmd struct {
	ran bool
}

func (c *screenCmd) Name() string                   { return "screen" }
func (c *screenCmd) Aliases() []string              { return nil }
func (c *screenCmd) Synopsis() string               { return "" }
func (c *screenCmd) Usage() string                  { return "" }
func (c *screenCmd) NeedsRemote() bool              { return true }
func (c *screenCmd) RegisterFlags(fs *flag.FlagSet) {}
func (c *screenCmd) LogsToFile() bool               { return true }

func (c *screenCmd) Run(ctx context.Context, cfg *config.Config, store remote.Store, args []string, out, errOut io.Writer) int {
	c.ran = true
	cfg.Log().Debug("screen started")
	return exitcode.Success
}

func TestDispatcher_FileLoggerKeepsStderrClean(t *testing.T) {
	registry := commands.NewRegistry()
	cmd := &screenCmd{}
	if err := registry.Register(cmd); err != nil {
		t.Fatalf("Register: %v", err)
	}
	factory := func(ctx context.Context, cfg *config.Config) (remote.Store, error) {
		cfg.Log().Debug("remote call", "method", "GET")
		return testutil.NewFakeStore(), nil
	}
	dir := t.TempDir()

	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(registry, factory)
	code := dispatcher.Run(context.Background(), []string{"screen", "--debug", "--config", dir}, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if !cmd.ran {
		t.Fatal("command did not run")
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, config.LogFile))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"remote call", "screen started"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file should contain %q, got %q", want, data)
		}
	}
}

func TestDispatcher_TUILogsToFile(t *testing.T) {
	cmd, ok := commands.DefaultRegistry.Find("tui")
	if !ok {
		t.Fatal("tui command not registered")
	}
	fl, ok := cmd.(commands.FileLogger)
	if !ok || !fl.LogsToFile() {
		t.Error("tui must log to the log file")
	}
}
