// Package api implements the HTTP client the command-line interface uses to
// talk to the tasklist server. Tokens obtained at login are kept in memory
// for the lifetime of the session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin JSON-over-HTTP wrapper around the server API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// LoggedIn reports whether a login has succeeded in this session.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}

// Logout drops the session tokens.
func (c *Client) Logout() {
	c.accessToken = ""
	c.refreshToken = ""
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	resp := &authResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return &resp.User, nil
}

// Refresh trades the stored refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) error {
	body := map[string]string{"refreshToken": c.refreshToken}
	resp := &authResponse{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", body, resp); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) TaskLists(ctx context.Context) ([]TaskList, error) {
	var lists []TaskList
	if err := c.do(ctx, http.MethodGet, "/api/v1/task-lists/all", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) CreateTaskList(ctx context.Context, name string) (*TaskList, error) {
	list := &TaskList{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/task-lists", map[string]string{"name": name}, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) DeleteTaskList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/task-lists/"+id, nil, nil)
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/all", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title, description, taskListID string) (*Task, error) {
	body := map[string]any{"title": title, "description": description}
	if taskListID != "" {
		body["taskListId"] = taskListID
	}
	task := &Task{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", body, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks a task done without touching its other fields.
func (c *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	task := &Task{}
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+id, map[string]any{"completed": true}, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Message: "unexpected error"}
		var payload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
