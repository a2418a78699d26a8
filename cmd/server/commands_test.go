package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"jira_mcp/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearJiraEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"JIRA_URL", "JIRA_EMAIL", "JIRA_API_TOKEN", "LOG_LEVEL", "TRANSPORT", "ADDR"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestToolsCommand(t *testing.T) {
	clearJiraEnv(t)

	out, err := execute(t, "tools")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, out, "search_issues")
	assert.Contains(t, out, "get_sprint_issues")
}

func TestCallCommand(t *testing.T) {
	clearJiraEnv(t)

	body := `{"key":"PROJ-1","fields":{"summary":"Login fails"}}`
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "call", "get_issue",
		"--args", `{"issue_key":"PROJ-1","fields":"summary"}`,
		"--jira-url", srv.URL,
		"--jira-email", "bot@example.com",
		"--jira-api-token", "secret",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.JSONEq(t, body, out)
	assert.Equal(t, "/rest/api/3/issue/PROJ-1", gotPath)
	assert.Equal(t, "fields=summary", gotQuery)
}

func TestCallCommandUpstreamError(t *testing.T) {
	clearJiraEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errorMessages":["Issue does not exist"]}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("JIRA_URL", srv.URL)
	t.Setenv("JIRA_EMAIL", "bot@example.com")
	t.Setenv("JIRA_API_TOKEN", "secret")

	out, err := execute(t, "call", "get_issue", "--args", `{"issue_key":"NOPE-1"}`, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, out, "Issue does not exist")
}

func TestCallCommandMissingConfig(t *testing.T) {
	clearJiraEnv(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	_, err := execute(t, "call", "get_issue", "--args", `{"issue_key":"PROJ-1"}`, "--jira-url", srv.URL)

	var missing *config.MissingVarsError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, []string{"JIRA_EMAIL", "JIRA_API_TOKEN"}, missing.Vars)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCallCommandBadArgs(t *testing.T) {
	clearJiraEnv(t)

	_, err := execute(t, "call", "get_issue", "--args", `not json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--args must be a JSON object")
}

func TestServeRejectsUnknownTransport(t *testing.T) {
	clearJiraEnv(t)

	_, err := execute(t, "serve",
		"--transport", "grpc",
		"--jira-url", "example.atlassian.net",
		"--jira-email", "bot@example.com",
		"--jira-api-token", "secret",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}
