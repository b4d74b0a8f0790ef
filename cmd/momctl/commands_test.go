package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysis = `## Task Assignment
| Task | Owner | Deadline |
|------|-------|----------|
| Ship the beta | Alice | Friday |
| Update docs | Bob |

## Conflict Detection
{"Name of speaker1": "Alice", "Name of speaker2": "Bob", "conflict type (Orig_type)": "Neutral", "conflict description": "Release timing"}
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MOMCTL_TOKEN", "")
	t.Setenv("MOMCTL_USERNAME", "")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	out, err := run(t, sampleAnalysis, "extract", "-")
	require.NoError(t, err)

	var got struct {
		Tasks []struct {
			Person string `json:"person"`
			Task   string `json:"task"`
		} `json:"tasks"`
		Conflicts []struct {
			RaisedBy string `json:"raised_by"`
			Severity string `json:"severity"`
		} `json:"conflicts"`
		TaskSource string `json:"task_source"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Alice", got.Tasks[0].Person)
	assert.Equal(t, "table", got.TaskSource)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, "Alice vs Bob", got.Conflicts[0].RaisedBy)
	assert.Equal(t, "Low", got.Conflicts[0].Severity)
}

func TestSubmitCommand(t *testing.T) {
	var (
		mu    sync.Mutex
		posts []map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		posts = append(posts, body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"code":0,"message":"success","data":{"id":"new-id"}}`))
	}))
	defer srv.Close()

	out, err := run(t, sampleAnalysis, "--server", srv.URL, "submit", "--meeting", "5f0c6a3e-8c1d-4f5e-9b2a-1c2d3e4f5a6b")
	require.NoError(t, err)
	assert.Contains(t, out, `"session": "submission:5f0c6a3e-8c1d-4f5e-9b2a-1c2d3e4f5a6b:`)

	require.Len(t, posts, 3)
	deadlines := map[string]bool{}
	for _, p := range posts {
		assert.Equal(t, "5f0c6a3e-8c1d-4f5e-9b2a-1c2d3e4f5a6b", p["meeting_id"])
		assert.Equal(t, "extracted", p["source"])
		if deadline, ok := p["deadline"].(string); ok {
			deadlines[deadline] = true
		}
	}
	assert.True(t, deadlines["Friday"])
	assert.True(t, deadlines["Not Mentioned"])
}

func TestSubmitCommand_NothingFound(t *testing.T) {
	out, err := run(t, "just a summary", "submit")
	require.NoError(t, err)
	assert.Contains(t, out, `"task_source": "none"`)
}
