// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dialogue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

// withClaudeURL points the backend at a test server for the duration of a test.
func withClaudeURL(t *testing.T, url string) {
	t.Helper()
	old := claudeAPIURL
	claudeAPIURL = url
	t.Cleanup(func() { claudeAPIURL = old })
}

func TestClaudeBackendComplete(t *testing.T) {
	var gotAuth, gotVersion, gotModel string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")

		var req claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(claudeResponse{
			Content: []claudeContent{{Type: "text", Text: "What makes you say that?"}},
		})
	}))
	defer ts.Close()
	withClaudeURL(t, ts.URL)

	backend := NewClaudeBackend(types.CompletionConfig{
		APIKey:  "sk-test",
		Model:   "claude-sonnet-4-5-20250929",
		Timeout: 2 * time.Second,
	})
	out, err := backend.Complete(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "What makes you say that?", out)
	assert.Equal(t, "sk-test", gotAuth)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "claude-sonnet-4-5-20250929", gotModel)
}

func TestClaudeBackendNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer ts.Close()
	withClaudeURL(t, ts.URL)

	backend := NewClaudeBackend(types.CompletionConfig{APIKey: "sk-test", Timeout: 2 * time.Second})
	_, err := backend.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClaudeBackendNoTextContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(claudeResponse{})
	}))
	defer ts.Close()
	withClaudeURL(t, ts.URL)

	backend := NewClaudeBackend(types.CompletionConfig{APIKey: "sk-test", Timeout: 2 * time.Second})
	_, err := backend.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

func TestNewClaudeBackendDefaultTimeout(t *testing.T) {
	backend := NewClaudeBackend(types.CompletionConfig{})
	assert.Equal(t, 8*time.Second, backend.Timeout)
}
