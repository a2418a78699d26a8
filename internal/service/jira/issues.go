package jira

import (
	"context"
	"encoding/json"
	"net/url"
)

// SearchIssuesOptions are the query parameters of /rest/api/3/search/jql
type SearchIssuesOptions struct {
	JQL        string  `url:"jql"`
	Fields     *string `url:"fields,omitempty"`
	MaxResults int     `url:"maxResults"`
	StartAt    int     `url:"startAt"`
}

// SearchIssues runs a JQL search
func (c *Client) SearchIssues(ctx context.Context, opts *SearchIssuesOptions) (json.RawMessage, error) {
	return c.get(ctx, "/rest/api/3/search/jql", opts)
}

// GetIssueOptions are the query parameters of /rest/api/3/issue/{key}
type GetIssueOptions struct {
	Fields *string `url:"fields,omitempty"`
	Expand *string `url:"expand,omitempty"`
}

// GetIssue returns a single issue. opts may be nil.
func (c *Client) GetIssue(ctx context.Context, issueKey string, opts *GetIssueOptions) (json.RawMessage, error) {
	return c.get(ctx, issuePath(issueKey, ""), opts)
}

// CommentsOptions are the query parameters of /rest/api/3/issue/{key}/comment
type CommentsOptions struct {
	MaxResults int    `url:"maxResults"`
	StartAt    int    `url:"startAt"`
	OrderBy    string `url:"orderBy,omitempty"`
}

// GetIssueComments returns a page of comments on an issue
func (c *Client) GetIssueComments(ctx context.Context, issueKey string, opts *CommentsOptions) (json.RawMessage, error) {
	return c.get(ctx, issuePath(issueKey, "/comment"), opts)
}

// PageOptions is the offset pagination shared by most list endpoints
type PageOptions struct {
	MaxResults int `url:"maxResults"`
	StartAt    int `url:"startAt"`
}

// GetIssueChangelog returns a page of the issue's change history
func (c *Client) GetIssueChangelog(ctx context.Context, issueKey string, opts *PageOptions) (json.RawMessage, error) {
	return c.get(ctx, issuePath(issueKey, "/changelog"), opts)
}

// GetIssueTransitions lists the workflow transitions currently available
func (c *Client) GetIssueTransitions(ctx context.Context, issueKey string) (json.RawMessage, error) {
	return c.get(ctx, issuePath(issueKey, "/transitions"), nil)
}

func issuePath(issueKey, suffix string) string {
	return "/rest/api/3/issue/" + url.PathEscape(issueKey) + suffix
}
