package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskorg/internal/commands"
	"taskorg/internal/config"
	"taskorg/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// writeFiles creates name -> content files in a fresh config dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func runInDir(ctx context.Context, cmd commands.Command, dir string, quiet bool) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: dir, Quiet: quiet}
	code = cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_NoOAuthClientPrintsSetup(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runInDir(context.Background(), &commands.LoginCmd{}, dir, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	for _, want := range []string{
		"error: oauth_client.json not found in " + dir,
		"The googletasks backend needs OAuth credentials",
		filepath.Join(dir, config.OAuthClientFile),
		"Then run 'taskorg login' again.",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr should contain %q, got %q", want, stderr)
		}
	}
}

func TestLoginCommand_InvalidOAuthClient(t *testing.T) {
	dir := writeFiles(t, map[string]string{config.OAuthClientFile: "not json"})

	_, stderr, code := runInDir(context.Background(), &commands.LoginCmd{}, dir, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid oauth_client.json: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// An unusable token must not short-circuit as "already logged in"; login
// goes on to the browser step, which the cancelled context ends.
func TestLoginCommand_UnusableTokenStartsLogin(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"corrupt", `{not json`},
		{"no refresh token", `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{
				config.OAuthClientFile: testOAuthClient,
				config.TokenFile:       tt.token,
			})
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, stderr, code := runInDir(ctx, &commands.LoginCmd{}, dir, false)

			if stdout == "already logged in\n" {
				t.Fatal("should not report an unusable token as logged in")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
			if !strings.Contains(stderr, "error: ") {
				t.Errorf("expected an error on stderr, got %q", stderr)
			}
		})
	}
}

func TestLogoutCommand(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		quiet      bool
		wantStdout string
	}{
		{
			name: "logged in",
			files: map[string]string{
				config.OAuthClientFile: testOAuthClient,
				config.TokenFile:       `{"access_token":"test","refresh_token":"test"}`,
			},
			wantStdout: "ok\n",
		},
		{name: "not logged in", wantStdout: "not logged in\n"},
		{name: "not logged in quiet", quiet: true, wantStdout: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, tt.files)

			stdout, stderr, code := runInDir(context.Background(), &commands.LogoutCmd{}, dir, tt.quiet)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			if stdout != tt.wantStdout {
				t.Errorf("expected %q, got %q", tt.wantStdout, stdout)
			}
			if _, err := os.Stat(filepath.Join(dir, config.TokenFile)); !os.IsNotExist(err) {
				t.Error("token.json should not exist after logout")
			}
			if _, ok := tt.files[config.OAuthClientFile]; ok {
				if _, err := os.Stat(filepath.Join(dir, config.OAuthClientFile)); err != nil {
					t.Error("oauth_client.json must be kept")
				}
			}
		})
	}
}
