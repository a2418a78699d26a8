package jira

import (
	"context"
	"encoding/json"
	"strconv"
)

// ListBoardsOptions are the query parameters of /rest/agile/1.0/board
type ListBoardsOptions struct {
	ProjectKeyOrID *string `url:"projectKeyOrId,omitempty"`
	Type           *string `url:"type,omitempty"` // scrum, kanban or simple
	Name           *string `url:"name,omitempty"`
	MaxResults     int     `url:"maxResults"`
	StartAt        int     `url:"startAt"`
}

// ListBoards returns a page of agile boards
func (c *Client) ListBoards(ctx context.Context, opts *ListBoardsOptions) (json.RawMessage, error) {
	return c.get(ctx, "/rest/agile/1.0/board", opts)
}

// ListSprintsOptions are the query parameters of /rest/agile/1.0/board/{id}/sprint
type ListSprintsOptions struct {
	State      *string `url:"state,omitempty"` // comma separated: active, closed, future
	MaxResults int     `url:"maxResults"`
	StartAt    int     `url:"startAt"`
}

// ListSprints returns a page of the board's sprints
func (c *Client) ListSprints(ctx context.Context, boardID int, opts *ListSprintsOptions) (json.RawMessage, error) {
	return c.get(ctx, "/rest/agile/1.0/board/"+strconv.Itoa(boardID)+"/sprint", opts)
}

// SprintIssuesOptions are the query parameters of /rest/agile/1.0/sprint/{id}/issue
type SprintIssuesOptions struct {
	Fields     *string `url:"fields,omitempty"`
	MaxResults int     `url:"maxResults"`
	StartAt    int     `url:"startAt"`
}

// GetSprintIssues returns a page of the issues in a sprint
func (c *Client) GetSprintIssues(ctx context.Context, sprintID int, opts *SprintIssuesOptions) (json.RawMessage, error) {
	return c.get(ctx, "/rest/agile/1.0/sprint/"+strconv.Itoa(sprintID)+"/issue", opts)
}
