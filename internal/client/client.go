// Package client provides the daybook API client and the per-date session
// cache used by the CLI.
//
// The cache is a write-through projection of the store: a day's entries are
// refreshed wholesale on navigation, and mutations apply the store's echoed
// canonical fields rather than client-side deltas. Local state is only
// touched after the server confirms a mutation (update-then-merge, never
// merge-then-confirm).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jwhitt/daybook/internal/record"
)

// Client calls the daybook HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an API client for a daybook server at baseURL,
// e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// apiError is the uniform error body returned by the façade.
type apiError struct {
	Error string `json:"error"`
}

// ListTasks fetches all tasks for a canonical date.
func (c *Client) ListTasks(ctx context.Context, date string) ([]record.Task, error) {
	var tasks []record.Task
	err := c.get(ctx, "/api/tasks?date="+url.QueryEscape(date), &tasks)
	return tasks, err
}

// CreateTask creates a task and returns the canonical row assigned by the
// store.
func (c *Client) CreateTask(ctx context.Context, text, date string) (record.Task, error) {
	var task record.Task
	err := c.post(ctx, "/api/tasks", map[string]string{"text": text, "date": date}, &task)
	return task, err
}

// SetTaskCompletion flips a task's completed flag.
func (c *Client) SetTaskCompletion(ctx context.Context, id int64, completed bool) error {
	var ack struct {
		Success bool `json:"success"`
	}
	body := map[string]any{"id": id, "completed": completed}
	if err := c.do(ctx, http.MethodPut, "/api/tasks", body, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("update task %d: server did not acknowledge", id)
	}
	return nil
}

// DeleteTask deletes a task by identity. Idempotent.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks?id="+strconv.FormatInt(id, 10), nil, nil)
}

// ListNotes fetches all notes for a canonical date.
func (c *Client) ListNotes(ctx context.Context, date string) ([]record.Note, error) {
	var notes []record.Note
	err := c.get(ctx, "/api/notes?date="+url.QueryEscape(date), &notes)
	return notes, err
}

// CreateNote creates a note and returns the canonical row.
func (c *Client) CreateNote(ctx context.Context, text, date string) (record.Note, error) {
	var note record.Note
	err := c.post(ctx, "/api/notes", map[string]string{"text": text, "date": date}, &note)
	return note, err
}

// DeleteNote deletes a note by identity. Idempotent.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/notes?id="+strconv.FormatInt(id, 10), nil, nil)
}

// Records fetches the aggregate cross-date view.
func (c *Client) Records(ctx context.Context) (record.Records, error) {
	var records record.Records
	err := c.get(ctx, "/api/records", &records)
	return records, err
}

// Weather fetches the current rounded temperature.
func (c *Client) Weather(ctx context.Context) (int, error) {
	var resp struct {
		Temp int `json:"temp"`
	}
	if err := c.get(ctx, "/api/weather", &resp); err != nil {
		return 0, err
	}
	return resp.Temp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
