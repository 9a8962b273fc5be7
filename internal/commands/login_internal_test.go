package commands

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"taskorg/internal/backend/googletasks"
	"taskorg/internal/config"
)

type callbackResult struct {
	code string
	err  error
}

// startCallback runs awaitCallback on a free local port.
func startCallback(t *testing.T, ctx context.Context) (string, <-chan callbackResult) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	done := make(chan callbackResult, 1)
	go func() {
		code, err := awaitCallback(ctx, listener)
		done <- callbackResult{code, err}
	}()
	return "http://" + listener.Addr().String() + "/callback", done
}

func TestAwaitCallback_DeliversCode(t *testing.T) {
	url, done := startCallback(t, context.Background())

	resp, err := http.Get(url + "?code=abc123&state=state")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	res := <-done
	if res.err != nil {
		t.Fatalf("awaitCallback: %v", res.err)
	}
	if res.code != "abc123" {
		t.Errorf("expected code abc123, got %q", res.code)
	}
}

func TestAwaitCallback_MissingCode(t *testing.T) {
	url, done := startCallback(t, context.Background())

	resp, err := http.Get(url + "?error=access_denied")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	res := <-done
	if res.err == nil || res.err.Error() != "no code in callback" {
		t.Errorf("expected 'no code in callback', got %v", res.err)
	}
}

func TestAwaitCallback_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, done := startCallback(t, ctx)
	cancel()

	res := <-done
	if res.err == nil || res.err.Error() != "cancelled" {
		t.Errorf("expected 'cancelled', got %v", res.err)
	}
}

func TestLoadOAuthConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty means no file
		wantErr string
	}{
		{name: "missing", wantErr: "failed to read oauth_client.json"},
		{name: "invalid", content: "not json", wantErr: "invalid oauth_client.json"},
		{name: "valid", content: `{"installed":{"client_id":"cid","client_secret":"sec","redirect_uris":["http://localhost"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Dir: t.TempDir()}
			if tt.content != "" {
				if err := os.WriteFile(cfg.OAuthClientPath(), []byte(tt.content), 0600); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}

			oc, err := loadOAuthConfig(cfg)

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadOAuthConfig: %v", err)
			}
			if oc.ClientID != "cid" {
				t.Errorf("unexpected client id %q", oc.ClientID)
			}
			if !slices.Contains(oc.Scopes, googletasks.Scope) {
				t.Errorf("expected scope %q, got %v", googletasks.Scope, oc.Scopes)
			}
		})
	}
}

func TestPrintOAuthSetup(t *testing.T) {
	var buf bytes.Buffer
	printOAuthSetup(&buf, "/home/u/.config/taskorg")

	got := buf.String()
	for _, want := range []string{
		"error: oauth_client.json not found in /home/u/.config/taskorg\n",
		"The googletasks backend needs OAuth credentials:",
		"tasks.googleapis.com",
		"   /home/u/.config/taskorg/oauth_client.json\n",
		"Then run 'taskorg login' again.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q, got %q", want, got)
		}
	}
}

func TestSaveTokenAndValidity(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if err := os.WriteFile(cfg.OAuthClientPath(), []byte(`{"installed":{"client_id":"c","client_secret":"s"}}`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := saveToken(cfg.TokenPath(), &oauth2.Token{AccessToken: "a", TokenType: "Bearer"}); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	info, err := os.Stat(filepath.Join(cfg.Dir, config.TokenFile))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
	if isTokenValid(cfg) {
		t.Error("a token without a refresh token is not valid")
	}
}
