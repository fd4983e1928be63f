package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aide-ai/aide/internal/config"
)

func chatOK(content string, tokens int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
			"usage": map[string]int{"total_tokens": tokens},
		})
	}
}

func testModel(baseURL string) config.ModelConfig {
	return config.ModelConfig{
		Name:        "test_model",
		BaseURL:     baseURL,
		APIKey:      "secret",
		Model:       "vendor/test-1",
		MaxTokens:   1024,
		Temperature: 0.7,
		Timeout:     5,
		Retries:     1,
		Enabled:     true,
	}
}

func TestExecute_HappyPath(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		chatOK("done", 42)(w, r)
	}))
	defer srv.Close()

	result, err := New(nil, nil).Execute(context.Background(), Task{
		Model:    testModel(srv.URL),
		Prompt:   "hello",
		TaskType: "coding",
	})
	require.NoError(t, err)
	assert.Equal(t, "done", result.Output)
	assert.Equal(t, 42, result.TokensUsed)
	assert.Equal(t, "test_model", result.ModelName)

	assert.Equal(t, "vendor/test-1", got.Model)
	require.NotEmpty(t, got.Messages)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[len(got.Messages)-1].Content)
}

func TestExecute_OverridesApplied(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		chatOK("ok", 1)(w, r)
	}))
	defer srv.Close()

	temp := 0.1
	tokens := 256
	_, err := New(nil, nil).Execute(context.Background(), Task{
		Model:       testModel(srv.URL),
		Prompt:      "x",
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.1, got.Temperature)
	assert.Equal(t, 256, got.MaxTokens)
}

func TestExecute_FileContentsAttached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main"), 0o600))

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		chatOK("ok", 1)(w, r)
	}))
	defer srv.Close()

	_, err := New(nil, nil).Execute(context.Background(), Task{
		Model:  testModel(srv.URL),
		Prompt: "review",
		Files:  []string{path},
	})
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Contains(t, got.Messages[1].Content, "main.go")
	assert.Contains(t, got.Messages[1].Content, "package main")
}

func TestExecute_SearchQuerySteersMessages(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		chatOK("ok", 1)(w, r)
	}))
	defer srv.Close()

	_, err := New(nil, nil).Execute(context.Background(), Task{
		Model:       testModel(srv.URL),
		Prompt:      "summarize",
		SearchQuery: "token refresh",
	})
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Contains(t, got.Messages[1].Content, "token refresh")
	assert.Equal(t, "summarize", got.Messages[2].Content)
}

func TestExecute_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		chatOK("recovered", 7)(w, r)
	}))
	defer srv.Close()

	mc := testModel(srv.URL)
	mc.Retries = 2
	result, err := New(nil, nil).Execute(context.Background(), Task{Model: mc, Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Output)
	assert.Equal(t, int32(2), calls.Load())
}

func TestExecute_ExhaustedRetriesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	mc := testModel(srv.URL)
	mc.Retries = 2
	_, err := New(nil, nil).Execute(context.Background(), Task{Model: mc, Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempts")
}

func TestExecute_DisabledModelRejected(t *testing.T) {
	mc := testModel("http://127.0.0.1:1")
	mc.Enabled = false

	_, err := New(nil, nil).Execute(context.Background(), Task{Model: mc, Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
