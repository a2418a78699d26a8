package jira

import (
	"context"
	"encoding/json"
)

// ListProjectsOptions are the query parameters of /rest/api/3/project/search
type ListProjectsOptions struct {
	Query      *string `url:"query,omitempty"`
	MaxResults int     `url:"maxResults"`
	StartAt    int     `url:"startAt"`
}

// ListProjects returns a page of projects visible to the user
func (c *Client) ListProjects(ctx context.Context, opts *ListProjectsOptions) (json.RawMessage, error) {
	return c.get(ctx, "/rest/api/3/project/search", opts)
}
