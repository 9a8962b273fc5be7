// Package rest implements remote.Store over a JSON REST collection.
//
// The collection follows the usual mock-API conventions:
//
//	GET    /tasks        list all records
//	POST   /tasks        create, body {"name": ..., "active": ...}
//	PUT    /tasks/{id}   partial update, body holds only changed fields
//	DELETE /tasks/{id}   delete
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskorg/internal/config"
	"taskorg/internal/remote"
)

const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is reports 401 and 403 responses as remote.ErrAuth.
func (e *StatusError) Is(target error) bool {
	return target == remote.ErrAuth && (e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden)
}

// Client implements remote.Store against a REST collection.
type Client struct {
	url    string
	token  string
	http   *http.Client
	logger *slog.Logger
}

// New creates a client from REST settings.
func New(s config.RESTSettings, logger *slog.Logger) *Client {
	c := NewWithHTTPClient(s.CollectionURL(), &http.Client{Timeout: s.RequestTimeout()}, logger)
	c.token = strings.TrimSpace(s.Token)
	return c
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(collectionURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		url:    strings.TrimRight(collectionURL, "/"),
		http:   httpClient,
		logger: logger,
	}
}

// List implements remote.Store. Entries that are null or fail to decode are
// dropped rather than failing the whole list.
func (c *Client) List(ctx context.Context) ([]remote.Record, error) {
	var raw []json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, c.url, nil, &raw); err != nil {
		return nil, err
	}

	records := make([]remote.Record, 0, len(raw))
	for _, item := range raw {
		if len(bytes.TrimSpace(item)) == 0 || bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var r remote.Record
		if err := json.Unmarshal(item, &r); err != nil {
			c.logger.Debug("dropping malformed record", "err", err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// Create implements remote.Store.
func (c *Client) Create(ctx context.Context, name string, active bool) (remote.Record, error) {
	body := struct {
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}{Name: name, Active: active}

	var r remote.Record
	if err := c.doJSON(ctx, http.MethodPost, c.url, body, &r); err != nil {
		return remote.Record{}, err
	}
	return r, nil
}

// Update implements remote.Store. An empty response body yields a record
// carrying only the id.
func (c *Client) Update(ctx context.Context, id string, p remote.Patch) (remote.Record, error) {
	r := remote.Record{ID: id}
	if err := c.doJSON(ctx, http.MethodPut, c.itemURL(id), p, &r); err != nil {
		return remote.Record{}, err
	}
	if r.ID == "" {
		r.ID = id
	}
	return r, nil
}

// Delete implements remote.Store.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id string) string {
	return c.url + "/" + url.PathEscape(id)
}

func (c *Client) doJSON(ctx context.Context, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("remote call failed", "req", reqID, "method", method, "url", target, "err", err)
		return wrapError(err)
	}
	defer resp.Body.Close()
	c.logger.Debug("remote call", "req", reqID, "method", method, "url", target,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, URL: target, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

// wrapError normalises transport errors.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
