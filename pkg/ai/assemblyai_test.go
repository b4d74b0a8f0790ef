package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/minutemind/pkg/config"
)

func TestAssemblyAIClient_Submit(t *testing.T) {
	var payload map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.Contains(r.URL.Path, "transcript"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "transcript-123", "status": "queued"})
	}))
	defer ts.Close()

	cfg := &config.AssemblyConfig{APIKey: "test-key", WebhookSecret: "hook"}
	client := NewAssemblyAIClient(cfg, "https://minutes.example.com/v1/webhooks/assemblyai", ts.URL)

	id, err := client.Submit(context.Background(), "https://files.example.com/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "transcript-123", id)

	assert.Equal(t, "https://files.example.com/a.mp3", payload["audio_url"])
	assert.Equal(t, true, payload["speaker_labels"])
	assert.Equal(t, "https://minutes.example.com/v1/webhooks/assemblyai", payload["webhook_url"])
	assert.Equal(t, WebhookAuthHeader, payload["webhook_auth_header_name"])
}

func TestAssemblyAIClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "transcript-123",
			"status": "completed",
			"text": "Hello there. General Kenobi.",
			"language_code": "en",
			"confidence": 0.93,
			"utterances": [
				{"speaker": "A", "text": "Hello there.", "start": 0, "end": 1500},
				{"speaker": "B", "text": "General Kenobi.", "start": 1800, "end": 3250}
			]
		}`))
	}))
	defer ts.Close()

	client := NewAssemblyAIClient(&config.AssemblyConfig{APIKey: "test-key"}, "", ts.URL)

	result, err := client.Fetch(context.Background(), "transcript-123")
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, "en", result.Language)
	require.Len(t, result.Utterances, 2)
	assert.Equal(t, Utterance{Speaker: "B", Text: "General Kenobi.", Start: 1.8, End: 3.25}, result.Utterances[1])
}

func TestAssemblyAIClient_VerifyWebhook(t *testing.T) {
	open := NewAssemblyAIClient(&config.AssemblyConfig{APIKey: "k"}, "", "")
	assert.True(t, open.VerifyWebhook(""))

	guarded := NewAssemblyAIClient(&config.AssemblyConfig{APIKey: "k", WebhookSecret: "s"}, "", "")
	assert.False(t, guarded.VerifyWebhook(""))
	assert.True(t, guarded.VerifyWebhook("s"))
}
