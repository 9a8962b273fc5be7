// Package googletasks implements remote.Store using the Google Tasks API.
//
// A Google task maps onto a record as follows: title is the name, and a task
// is active unless its status is "completed".
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskorg/internal/config"
	"taskorg/internal/remote"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements remote.Store over one Google Tasks list.
type Client struct {
	svc    *tasks.Service
	listID string
	logger *slog.Logger
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: oauth_client.json not found in %s", remote.ErrAuth, cfg.Dir)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid oauth_client.json: %v", remote.ErrAuth, err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: not logged in (run: taskorg login)", remote.ErrAuth)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("%w: invalid token.json: %v", remote.ErrAuth, err)
	}

	// Token source refreshes automatically.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	return NewWithHTTPClient(ctx, httpClient, cfg.Settings.GoogleList(), logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// Extra options such as option.WithEndpoint are passed to the tasks service.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listID string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if listID == "" {
		listID = DefaultListID
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{svc: svc, listID: listID, logger: logger}, nil
}

// List implements remote.Store. Completed and hidden tasks are included so
// that they populate the deleted list.
func (c *Client) List(ctx context.Context) ([]remote.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []remote.Record
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, toRecord(t))
			}
			return nil
		})
	if err != nil {
		return nil, c.wrapError("list", err)
	}
	return result, nil
}

// Create implements remote.Store.
func (c *Client) Create(ctx context.Context, name string, active bool) (remote.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t, err := c.svc.Tasks.Insert(c.listID, &tasks.Task{Title: name, Status: status(active)}).Context(ctx).Do()
	if err != nil {
		return remote.Record{}, c.wrapError("create", err)
	}
	return toRecord(t), nil
}

// Update implements remote.Store.
func (c *Client) Update(ctx context.Context, id string, p remote.Patch) (remote.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	patch := &tasks.Task{}
	if p.Name != nil {
		patch.Title = *p.Name
		patch.ForceSendFields = append(patch.ForceSendFields, "Title")
	}
	if p.Active != nil {
		patch.Status = status(*p.Active)
		if *p.Active {
			// Reopening a task must clear its completion time.
			patch.NullFields = append(patch.NullFields, "Completed")
		}
	}

	t, err := c.svc.Tasks.Patch(c.listID, id, patch).Context(ctx).Do()
	if err != nil {
		return remote.Record{}, c.wrapError("update", err)
	}
	return toRecord(t), nil
}

// Delete implements remote.Store.
func (c *Client) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return c.wrapError("delete", err)
	}
	return nil
}

func toRecord(t *tasks.Task) remote.Record {
	r := remote.Record{ID: t.Id, Name: remote.String(t.Title)}
	if t.Status != "" {
		r.Active = remote.Bool(t.Status != statusCompleted)
	}
	return r
}

func status(active bool) string {
	if active {
		return statusNeedsAction
	}
	return statusCompleted
}

// wrapError wraps API errors with user-friendly messages.
func (c *Client) wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	c.logger.Debug("google tasks call failed", "op", op, "list", c.listID, "err", err)

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: taskorg login)", remote.ErrAuth)
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token expired or revoked (run: taskorg login)", remote.ErrAuth)
	}

	return err
}
