package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  hello there \n"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	out, err := c.Complete(context.Background(), CompletionRequest{
		System:      "sys",
		User:        "usr",
		Temperature: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	assert.Equal(t, defaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "usr", got.Messages[1].Content)
	assert.Equal(t, 0.3, got.Temperature)
}

func TestClient_Complete_TrailingSlashBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "k")
	out, err := c.Complete(context.Background(), CompletionRequest{User: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestClient_Complete_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Complete(context.Background(), CompletionRequest{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API request failed with status 429")
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Complete(context.Background(), CompletionRequest{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion returned")
}
