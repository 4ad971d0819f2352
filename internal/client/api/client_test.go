package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])

		json.NewEncoder(w).Encode(authResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			TokenType:    "Bearer",
			User:         User{ID: "user-1", Email: "alice@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.False(t, c.LoggedIn())

	user, err := c.Login(context.Background(), "alice@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, c.LoggedIn())

	c.Logout()
	assert.False(t, c.LoggedIn())
}

func TestAuthorizedRequestsCarryBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]TaskList{{ID: "list-1", Name: "Groceries"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.accessToken = "access-token"

	lists, err := c.TaskLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Bearer access-token", gotAuth)
}

func TestErrorResponsesAreDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Me(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestErrorResponseWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteTask(context.Background(), "task-1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "unexpected error", apiErr.Message)
}

func TestCompleteTask_SendsOnlyCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"completed": true}, body)

		json.NewEncoder(w).Encode(Task{ID: "task-1", Title: "Buy milk", Completed: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	task, err := c.CompleteTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.True(t, task.Completed)
}
