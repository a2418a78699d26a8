package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Transport names accepted by the serve command
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// Jira configuration
	JiraURL      string // Required: Jira site base URL, normalized by NormalizeBaseURL
	JiraEmail    string // Required: account email used for basic auth
	JiraAPIToken string // Required: Atlassian API token

	// Log level
	LogLevel string

	// MCP transport (stdio or http) and listen address for http
	Transport string
	Addr      string
}

// MissingVarsError is returned when required Jira settings are absent.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// viper keys; env names are derived by upper-casing and replacing "-" with "_"
const (
	keyJiraURL      = "jira-url"
	keyJiraEmail    = "jira-email"
	keyJiraAPIToken = "jira-api-token"
	keyLogLevel     = "log-level"
	keyTransport    = "transport"
	keyAddr         = "addr"
)

// NewViper returns a viper instance with defaults and environment binding
// applied. Callers may bind flags or set a config file before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyTransport, TransportStdio)
	v.SetDefault(keyAddr, ":8080")
	return v
}

// Load creates a new Config from the given viper instance
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		JiraURL:      NormalizeBaseURL(v.GetString(keyJiraURL)),
		JiraEmail:    strings.TrimSpace(v.GetString(keyJiraEmail)),
		JiraAPIToken: strings.TrimSpace(v.GetString(keyJiraAPIToken)),
		LogLevel:     v.GetString(keyLogLevel),
		Transport:    v.GetString(keyTransport),
		Addr:         v.GetString(keyAddr),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return nil, fmt.Errorf("unsupported transport %q (want %s or %s)", cfg.Transport, TransportStdio, TransportHTTP)
	}

	return cfg, nil
}

// Validate reports every missing Jira setting by its environment variable name.
func (c *Config) Validate() error {
	requiredVars := []struct {
		env   string
		value string
	}{
		{"JIRA_URL", c.JiraURL},
		{"JIRA_EMAIL", c.JiraEmail},
		{"JIRA_API_TOKEN", c.JiraAPIToken},
	}

	var missingVars []string
	for _, rv := range requiredVars {
		if rv.value == "" {
			missingVars = append(missingVars, rv.env)
		}
	}

	if len(missingVars) > 0 {
		return &MissingVarsError{Vars: missingVars}
	}
	return nil
}

// NormalizeBaseURL strips trailing slashes and adds an https:// scheme when
// none is present. An empty input stays empty.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "http://") {
		u = "https://" + u
	}
	return u
}
