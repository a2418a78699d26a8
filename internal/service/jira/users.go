package jira

import (
	"context"
	"encoding/json"
)

// SearchUsersOptions are the query parameters of /rest/api/3/user/search
type SearchUsersOptions struct {
	Query      string `url:"query"`
	MaxResults int    `url:"maxResults"`
}

// SearchUsers finds users by name or email. Jira answers with a JSON array.
func (c *Client) SearchUsers(ctx context.Context, opts *SearchUsersOptions) (json.RawMessage, error) {
	return c.get(ctx, "/rest/api/3/user/search", opts)
}
