package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/minutemind/pkg/config"
)

func newTestGroq(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewGroqClient(&config.GroqConfig{
		APIKey:      "gsk-test",
		BaseURL:     ts.URL + "/",
		Model:       "test-model",
		Temperature: 0.1,
		MaxTokens:   256,
		Timeout:     5 * time.Second,
	})
}

func TestGroqClient_AnalyzeTranscript(t *testing.T) {
	var got ChatRequest
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "```markdown\n## Summary\nShort.\n```"}},
			},
		})
	})

	out, err := client.AnalyzeTranscript(context.Background(), "Alice: let's ship")
	require.NoError(t, err)
	assert.Equal(t, "## Summary\nShort.", out)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "Alice: let's ship")
	assert.Contains(t, got.Messages[1].Content, "## Task Assignment")
}

func TestGroqClient_StatusError(t *testing.T) {
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.True(t, statusErr.Temporary())
	assert.Equal(t, http.StatusTooManyRequests, statusErr.HTTPStatus())
	assert.Contains(t, err.Error(), "slow down")
}

func TestGroqClient_EmptyChoices(t *testing.T) {
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), nil)
	assert.EqualError(t, err, "empty response from groq")
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"plain text":                  "plain text",
		"```\n## A\n```":              "## A",
		"```md\n## A\nrow\n```":       "## A\nrow",
		"  ```markdown\n## A\n```  \n": "## A",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFence(in), "input %q", in)
	}
}

func TestVerifyToken(t *testing.T) {
	assert.True(t, VerifyToken("secret", "secret"))
	assert.False(t, VerifyToken("secret", "Secret"))
	assert.False(t, VerifyToken("", ""))
	assert.False(t, VerifyToken("secret", ""))
}
