package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setJiraEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JIRA_URL", "my.atlassian.net/")
	t.Setenv("JIRA_EMAIL", "dev@example.com")
	t.Setenv("JIRA_API_TOKEN", "secret-token")
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my.atlassian.net", "https://my.atlassian.net"},
		{"https://my.atlassian.net/", "https://my.atlassian.net"},
		{"https://my.atlassian.net///", "https://my.atlassian.net"},
		{"http://localhost:8080/", "http://localhost:8080"},
		{"  my.atlassian.net/jira/ ", "https://my.atlassian.net/jira"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeBaseURL(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeBaseURL(got), "normalization should be idempotent")
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	setJiraEnv(t)

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "https://my.atlassian.net", cfg.JiraURL)
	assert.Equal(t, "dev@example.com", cfg.JiraEmail)
	assert.Equal(t, "secret-token", cfg.JiraAPIToken)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadMissingVars(t *testing.T) {
	for _, missing := range []string{"JIRA_URL", "JIRA_EMAIL", "JIRA_API_TOKEN"} {
		t.Run(missing, func(t *testing.T) {
			setJiraEnv(t)
			t.Setenv(missing, "")

			cfg, err := Load(NewViper())
			assert.Nil(t, cfg)

			var missingErr *MissingVarsError
			require.True(t, errors.As(err, &missingErr), "expected MissingVarsError, got %v", err)
			assert.Equal(t, []string{missing}, missingErr.Vars)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadReportsAllMissingVars(t *testing.T) {
	t.Setenv("JIRA_URL", "")
	t.Setenv("JIRA_EMAIL", "")
	t.Setenv("JIRA_API_TOKEN", "")

	_, err := Load(NewViper())
	require.Error(t, err)
	assert.Equal(t, "missing required environment variables: JIRA_URL, JIRA_EMAIL, JIRA_API_TOKEN", err.Error())
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	setJiraEnv(t)
	t.Setenv("TRANSPORT", "carrier-pigeon")

	_, err := Load(NewViper())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}

func TestLoadFromConfigFile(t *testing.T) {
	t.Setenv("JIRA_URL", "")
	t.Setenv("JIRA_EMAIL", "")
	t.Setenv("JIRA_API_TOKEN", "")

	path := filepath.Join(t.TempDir(), "jira.yaml")
	content := "jira-url: https://team.atlassian.net/\njira-email: bot@example.com\njira-api-token: abc\ntransport: http\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://team.atlassian.net", cfg.JiraURL)
	assert.Equal(t, "bot@example.com", cfg.JiraEmail)
	assert.Equal(t, TransportHTTP, cfg.Transport)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	setJiraEnv(t)

	path := filepath.Join(t.TempDir(), "jira.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jira-email: file@example.com\n"), 0o600))

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", cfg.JiraEmail)
}
