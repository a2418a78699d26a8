// Package jira is a read-only client for the Jira Cloud REST v3 and Agile v1.0
// APIs. Responses are returned as the raw JSON Jira sent.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"time"

	"jira_mcp/internal/config"
	"jira_mcp/internal/logger"

	"github.com/google/go-querystring/query"
	"go.uber.org/zap"
)

const userAgent = "jira-mcp/1.0.0"

// Client issues authenticated GET requests against a single Jira site.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client from the connection settings in cfg. A config
// with missing values is rejected before any request is made.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &config.MissingVarsError{Vars: []string{"JIRA_URL", "JIRA_EMAIL", "JIRA_API_TOKEN"}}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    config.NormalizeBaseURL(cfg.JiraURL),
		email:      cfg.JiraEmail,
		apiToken:   cfg.JiraAPIToken,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get sends GET baseURL+path with opts encoded as the query string and
// returns the JSON body unchanged.
func (c *Client) get(ctx context.Context, path string, opts any) (json.RawMessage, error) {
	u, err := c.buildURL(path, opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().Debug("jira request failed",
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, &TransportError{Method: http.MethodGet, URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: u, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	logger.GetLogger().Debug("jira request",
		zap.String("method", http.MethodGet),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     http.MethodGet,
			URL:        u,
			Body:       body,
		}
	}

	if !json.Valid(body) {
		return nil, &DecodeError{URL: u, Body: body}
	}
	return json.RawMessage(body), nil
}

// buildURL joins path onto the base URL and encodes opts, which must be nil
// or a struct (pointer) with "url" tags.
func (c *Client) buildURL(path string, opts any) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}

	v := reflect.ValueOf(opts)
	if opts == nil || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return u.String(), nil
	}

	qs, err := query.Values(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode query parameters: %w", err)
	}
	u.RawQuery = qs.Encode()
	return u.String(), nil
}
