package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jira_mcp/internal/service/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	defaultMaxResults      = 50
	defaultUserMaxResults  = 10
	defaultCommentsOrderBy = "-created"
)

// JiraClient is the read-only Jira API the tools are built on.
// *jira.Client implements it.
type JiraClient interface {
	SearchIssues(ctx context.Context, opts *jira.SearchIssuesOptions) (json.RawMessage, error)
	GetIssue(ctx context.Context, issueKey string, opts *jira.GetIssueOptions) (json.RawMessage, error)
	GetIssueComments(ctx context.Context, issueKey string, opts *jira.CommentsOptions) (json.RawMessage, error)
	GetIssueChangelog(ctx context.Context, issueKey string, opts *jira.PageOptions) (json.RawMessage, error)
	GetIssueTransitions(ctx context.Context, issueKey string) (json.RawMessage, error)
	ListProjects(ctx context.Context, opts *jira.ListProjectsOptions) (json.RawMessage, error)
	ListBoards(ctx context.Context, opts *jira.ListBoardsOptions) (json.RawMessage, error)
	ListSprints(ctx context.Context, boardID int, opts *jira.ListSprintsOptions) (json.RawMessage, error)
	GetSprintIssues(ctx context.Context, sprintID int, opts *jira.SprintIssuesOptions) (json.RawMessage, error)
	SearchUsers(ctx context.Context, opts *jira.SearchUsersOptions) (json.RawMessage, error)
}

var _ JiraClient = (*jira.Client)(nil)

// jiraTools returns every tool this server exposes
func jiraTools(c JiraClient) []server.ServerTool {
	return []server.ServerTool{
		toServerTool(SearchIssues(c)),
		toServerTool(GetIssue(c)),
		toServerTool(GetIssueComments(c)),
		toServerTool(GetIssueChangelog(c)),
		toServerTool(GetIssueTransitions(c)),
		toServerTool(ListProjects(c)),
		toServerTool(ListBoards(c)),
		toServerTool(ListSprints(c)),
		toServerTool(GetSprintIssues(c)),
		toServerTool(SearchUsers(c)),
	}
}

func toServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{Tool: tool, Handler: handler}
}

func readOnly(title string) mcp.ToolOption {
	return mcp.WithToolAnnotation(mcp.ToolAnnotation{
		Title:        title,
		ReadOnlyHint: ToBoolPtr(true),
	})
}

func withIssueKey() mcp.ToolOption {
	return mcp.WithString("issue_key",
		mcp.Required(),
		mcp.Description("Issue key (e.g. 'PROJ-123')"),
	)
}

func withMaxResults(d int, desc string) mcp.ToolOption {
	return mcp.WithNumber("max_results",
		mcp.Description(fmt.Sprintf("%s (default %d)", desc, d)),
		mcp.DefaultNumber(float64(d)),
	)
}

func withStartAt() mcp.ToolOption {
	return mcp.WithNumber("start_at",
		mcp.Description("Index of the first result, for pagination (default 0)"),
		mcp.DefaultNumber(0),
	)
}

// extractPage reads max_results/start_at with their defaults
func extractPage(r mcp.CallToolRequest, maxDefault int) (maxResults, startAt int, err error) {
	maxResults, err = OptionalIntParamWithDefault(r, "max_results", maxDefault)
	if err != nil {
		return 0, 0, err
	}
	startAt, err = OptionalIntParamWithDefault(r, "start_at", 0)
	if err != nil {
		return 0, 0, err
	}
	return maxResults, startAt, nil
}

// jiraResult wraps a Jira body, unchanged, as tool output
func jiraResult(raw json.RawMessage, err error, message string) (*mcp.CallToolResult, error) {
	if err != nil {
		return jiraErrorResult(message, err), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}

// jiraErrorResult turns an adapter error into a tool error result. Upstream
// errors carry Jira's status and raw body.
func jiraErrorResult(message string, err error) *mcp.CallToolResult {
	if jira.IsNotFound(err) {
		message += ": not found"
	}
	var upstream *jira.UpstreamError
	if errors.As(err, &upstream) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: Jira responded %s: %s", message, upstreamStatus(upstream), upstream.Body))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", message, err))
}

func upstreamStatus(e *jira.UpstreamError) string {
	if e.Status != "" {
		return e.Status
	}
	return fmt.Sprintf("%d", e.StatusCode)
}

// SearchIssues creates a tool to search issues with JQL
func SearchIssues(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("search_issues",
			mcp.WithDescription("Search issues using JQL. Returns paginated results."),
			readOnly("Search issues"),
			mcp.WithString("jql",
				mcp.Required(),
				mcp.Description(`JQL query string (e.g. 'project = PROJ AND status = "In Progress"')`),
			),
			mcp.WithString("fields",
				mcp.Description("Comma-separated field names to return (default: all navigable fields). Use 'key,summary,status,assignee,priority' for compact results."),
			),
			withMaxResults(defaultMaxResults, "Maximum results to return (1-100)"),
			withStartAt(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			jql, err := RequiredParam[string](req, "jql")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			fields, err := OptionalStringPtr(req, "fields")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.SearchIssues(ctx, &jira.SearchIssuesOptions{
				JQL:        jql,
				Fields:     fields,
				MaxResults: maxResults,
				StartAt:    startAt,
			})
			return jiraResult(raw, err, "failed to search issues")
		}
}

// GetIssue creates a tool to get the details of one issue
func GetIssue(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue",
			mcp.WithDescription("Get full details of a single issue."),
			readOnly("Get issue"),
			withIssueKey(),
			mcp.WithString("fields",
				mcp.Description("Comma-separated field names to return (default: all)"),
			),
			mcp.WithString("expand",
				mcp.Description("Comma-separated expansions (e.g. 'changelog,renderedFields')"),
			),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueKey, err := RequiredParam[string](req, "issue_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			fields, err := OptionalStringPtr(req, "fields")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			expand, err := OptionalStringPtr(req, "expand")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.GetIssue(ctx, issueKey, &jira.GetIssueOptions{Fields: fields, Expand: expand})
			return jiraResult(raw, err, "failed to get issue")
		}
}

// GetIssueComments creates a tool to read the comments on an issue
func GetIssueComments(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue_comments",
			mcp.WithDescription("Get comments on an issue. Comments often hold blockers, decisions and context."),
			readOnly("Get issue comments"),
			withIssueKey(),
			withMaxResults(defaultMaxResults, "Maximum comments to return"),
			withStartAt(),
			mcp.WithString("order_by",
				mcp.Description("Sort order: '-created' for newest first, '+created' for oldest first"),
				mcp.DefaultString(defaultCommentsOrderBy),
			),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueKey, err := RequiredParam[string](req, "issue_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			orderBy, err := OptionalParam[string](req, "order_by")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if orderBy == "" {
				orderBy = defaultCommentsOrderBy
			}

			raw, err := c.GetIssueComments(ctx, issueKey, &jira.CommentsOptions{
				MaxResults: maxResults,
				StartAt:    startAt,
				OrderBy:    orderBy,
			})
			return jiraResult(raw, err, "failed to get issue comments")
		}
}

// GetIssueChangelog creates a tool to read an issue's change history
func GetIssueChangelog(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue_changelog",
			mcp.WithDescription("Get the changelog for an issue: status transitions, reassignments and field changes with timestamps."),
			readOnly("Get issue changelog"),
			withIssueKey(),
			withMaxResults(defaultMaxResults, "Maximum entries to return"),
			withStartAt(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueKey, err := RequiredParam[string](req, "issue_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.GetIssueChangelog(ctx, issueKey, &jira.PageOptions{MaxResults: maxResults, StartAt: startAt})
			return jiraResult(raw, err, "failed to get issue changelog")
		}
}

// GetIssueTransitions creates a tool to list available workflow transitions
func GetIssueTransitions(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_issue_transitions",
			mcp.WithDescription("Get the workflow transitions currently available for an issue, i.e. which status changes are possible."),
			readOnly("Get issue transitions"),
			withIssueKey(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			issueKey, err := RequiredParam[string](req, "issue_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.GetIssueTransitions(ctx, issueKey)
			return jiraResult(raw, err, "failed to get issue transitions")
		}
}

// ListProjects creates a tool to list visible projects
func ListProjects(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_projects",
			mcp.WithDescription("List projects visible to the current user."),
			readOnly("List projects"),
			mcp.WithString("query",
				mcp.Description("Filter projects by name (case-insensitive substring match)"),
			),
			withMaxResults(defaultMaxResults, "Maximum results to return"),
			withStartAt(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query, err := OptionalStringPtr(req, "query")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.ListProjects(ctx, &jira.ListProjectsOptions{
				Query:      query,
				MaxResults: maxResults,
				StartAt:    startAt,
			})
			return jiraResult(raw, err, "failed to list projects")
		}
}

// ListBoards creates a tool to list agile boards
func ListBoards(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_boards",
			mcp.WithDescription("List agile boards. Filter by project, type or name."),
			readOnly("List boards"),
			mcp.WithString("project_key_or_id",
				mcp.Description("Filter boards by project key or ID"),
			),
			mcp.WithString("board_type",
				mcp.Description("Filter by board type"),
				mcp.Enum("scrum", "kanban", "simple"),
			),
			mcp.WithString("name",
				mcp.Description("Filter boards by name (substring match)"),
			),
			withMaxResults(defaultMaxResults, "Maximum results to return"),
			withStartAt(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			project, err := OptionalStringPtr(req, "project_key_or_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			boardType, err := OptionalStringPtr(req, "board_type")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			name, err := OptionalStringPtr(req, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.ListBoards(ctx, &jira.ListBoardsOptions{
				ProjectKeyOrID: project,
				Type:           boardType,
				Name:           name,
				MaxResults:     maxResults,
				StartAt:        startAt,
			})
			return jiraResult(raw, err, "failed to list boards")
		}
}

// ListSprints creates a tool to list the sprints of a board
func ListSprints(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("list_sprints",
			mcp.WithDescription("List sprints for a board."),
			readOnly("List sprints"),
			mcp.WithNumber("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithString("state",
				mcp.Description("Filter by sprint state ('active', 'closed', 'future'). Comma-separate for multiple."),
			),
			withMaxResults(defaultMaxResults, "Maximum results to return"),
			withStartAt(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			boardID, err := RequiredInt(req, "board_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			state, err := OptionalStringPtr(req, "state")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.ListSprints(ctx, boardID, &jira.ListSprintsOptions{
				State:      state,
				MaxResults: maxResults,
				StartAt:    startAt,
			})
			return jiraResult(raw, err, "failed to list sprints")
		}
}

// GetSprintIssues creates a tool to list the issues in a sprint
func GetSprintIssues(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_sprint_issues",
			mcp.WithDescription("Get all issues in a sprint."),
			readOnly("Get sprint issues"),
			mcp.WithNumber("sprint_id",
				mcp.Required(),
				mcp.Description("The ID of the sprint"),
			),
			mcp.WithString("fields",
				mcp.Description("Comma-separated field names to return (default: all navigable). Use 'key,summary,status,assignee,priority' for compact results."),
			),
			withMaxResults(defaultMaxResults, "Maximum results to return"),
			withStartAt(),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			sprintID, err := RequiredInt(req, "sprint_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			fields, err := OptionalStringPtr(req, "fields")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, startAt, err := extractPage(req, defaultMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.GetSprintIssues(ctx, sprintID, &jira.SprintIssuesOptions{
				Fields:     fields,
				MaxResults: maxResults,
				StartAt:    startAt,
			})
			return jiraResult(raw, err, "failed to get sprint issues")
		}
}

// SearchUsers creates a tool to find users by name or email
func SearchUsers(c JiraClient) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("search_users",
			mcp.WithDescription("Search for Jira users by name or email. Use this to resolve display names to account IDs for JQL queries."),
			readOnly("Search users"),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search string (matches name, email or username)"),
			),
			withMaxResults(defaultUserMaxResults, "Maximum results to return"),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query, err := RequiredParam[string](req, "query")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			maxResults, err := OptionalIntParamWithDefault(req, "max_results", defaultUserMaxResults)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			raw, err := c.SearchUsers(ctx, &jira.SearchUsersOptions{Query: query, MaxResults: maxResults})
			return jiraResult(raw, err, "failed to search users")
		}
}
