package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"taskorg/internal/remote"
)

type apiCall struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]apiCall) {
	t.Helper()
	var calls []apiCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := apiCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &call.Body)
		}
		calls = append(calls, call)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), "L1", nil, option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c, &calls
}

func TestList_MapsStatusAndFollowsPages(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "" {
			io.WriteString(w, `{"items":[
				{"id":"a","title":"Open","status":"needsAction"},
				{"id":"b","title":"Done","status":"completed"}
			],"nextPageToken":"p2"}`)
			return
		}
		io.WriteString(w, `{"items":[{"id":"c","title":"Later","status":"needsAction"}]}`)
	})

	records, err := c.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []remote.Record{
		remote.NewRecord("a", "Open", true),
		remote.NewRecord("b", "Done", false),
		remote.NewRecord("c", "Later", true),
	}, records)
	require.Len(t, *calls, 2)
	assert.True(t, strings.HasSuffix((*calls)[0].Path, "/lists/L1/tasks"))
	assert.Contains(t, (*calls)[0].Query, "showCompleted=true")
	assert.Contains(t, (*calls)[0].Query, "showHidden=true")
	assert.Contains(t, (*calls)[1].Query, "pageToken=p2")
}

func TestList_MissingStatusLeavesActiveUnset(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"items":[{"id":"a","title":"x"}]}`)
	})

	records, err := c.List(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Active)
}

func TestCreate(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"new","title":"Buy milk","status":"needsAction"}`)
	})

	rec, err := c.Create(context.Background(), "Buy milk", true)

	require.NoError(t, err)
	assert.Equal(t, remote.NewRecord("new", "Buy milk", true), rec)
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPost, (*calls)[0].Method)
	assert.Equal(t, "Buy milk", (*calls)[0].Body["title"])
	assert.Equal(t, "needsAction", (*calls)[0].Body["status"])
}

func TestUpdate_Status(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"a","title":"x","status":"completed"}`)
	})

	rec, err := c.Update(context.Background(), "a", remote.Patch{Active: remote.Bool(false)})

	require.NoError(t, err)
	assert.Equal(t, remote.NewRecord("a", "x", false), rec)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPatch, call.Method)
	assert.True(t, strings.HasSuffix(call.Path, "/lists/L1/tasks/a"))
	assert.Equal(t, map[string]any{"status": "completed"}, call.Body)
}

func TestUpdate_ReopenClearsCompleted(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"a","title":"x","status":"needsAction"}`)
	})

	_, err := c.Update(context.Background(), "a", remote.Patch{Active: remote.Bool(true)})

	require.NoError(t, err)
	body := (*calls)[0].Body
	assert.Equal(t, "needsAction", body["status"])
	assert.Contains(t, body, "completed")
	assert.Nil(t, body["completed"])
}

func TestUpdate_Title(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"a","title":"Renamed","status":"needsAction"}`)
	})

	rec, err := c.Update(context.Background(), "a", remote.Patch{Name: remote.String("Renamed")})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", *rec.Name)
	assert.Equal(t, map[string]any{"title": "Renamed"}, (*calls)[0].Body)
}

func TestDelete(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "a"))
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodDelete, (*calls)[0].Method)
	assert.True(t, strings.HasSuffix((*calls)[0].Path, "/lists/L1/tasks/a"))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		isAuth  bool
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, true, "token expired or revoked"},
		{"forbidden", http.StatusForbidden, true, "token expired or revoked"},
		{"not found", http.StatusNotFound, false, "not found"},
		{"bad request", http.StatusBadRequest, false, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				io.WriteString(w, `{"error":{"code":`+strconv.Itoa(tt.code)+`,"message":"boom"}}`)
			})

			err := c.Delete(context.Background(), "a")

			require.Error(t, err)
			assert.Equal(t, tt.isAuth, errors.Is(err, remote.ErrAuth))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
