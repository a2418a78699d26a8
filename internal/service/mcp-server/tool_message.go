package mcpserver

import (
	"fmt"
	"strings"
)

// ToolMessageFormatter handles formatting of tool-related messages
type ToolMessageFormatter struct{}

// NewToolMessageFormatter creates a new ToolMessageFormatter
func NewToolMessageFormatter() *ToolMessageFormatter {
	return &ToolMessageFormatter{}
}

// FormatToolCallMessage describes a tool call in plain language for log lines
func (f *ToolMessageFormatter) FormatToolCallMessage(toolName string, args map[string]any, err error) string {
	if err != nil {
		return f.formatErrorToolCall(toolName, args)
	}
	return f.formatSuccessToolCall(toolName, args)
}

// formatErrorToolCall formats error messages for tool calls
func (f *ToolMessageFormatter) formatErrorToolCall(toolName string, args map[string]any) string {
	switch toolName {
	case "search_issues":
		return fmt.Sprintf("Failed to search with JQL '%s'", stringArg(args, "jql"))
	case "get_issue":
		return fmt.Sprintf("Failed to retrieve details for issue %s", stringArg(args, "issue_key"))
	case "get_issue_comments":
		return fmt.Sprintf("Failed to retrieve comments for %s", stringArg(args, "issue_key"))
	case "get_issue_changelog":
		return fmt.Sprintf("Failed to retrieve changelog for %s", stringArg(args, "issue_key"))
	case "get_issue_transitions":
		return fmt.Sprintf("Failed to get transitions for %s", stringArg(args, "issue_key"))
	case "list_projects":
		return "Failed to list projects" + criteria(args, "query")
	case "list_boards":
		return "Failed to retrieve agile boards" + criteria(args, "project_key_or_id", "board_type", "name")
	case "list_sprints":
		return fmt.Sprintf("Failed to retrieve sprints from board %s", stringArg(args, "board_id"))
	case "get_sprint_issues":
		return fmt.Sprintf("Failed to retrieve issues from sprint %s", stringArg(args, "sprint_id"))
	case "search_users":
		return fmt.Sprintf("Failed to search users matching '%s'", stringArg(args, "query"))
	default:
		return "Operation failed"
	}
}

// formatSuccessToolCall formats success messages for tool calls
func (f *ToolMessageFormatter) formatSuccessToolCall(toolName string, args map[string]any) string {
	switch toolName {
	case "search_issues":
		return fmt.Sprintf("Searched issues with JQL '%s'%s", stringArg(args, "jql"), pageSuffix(args))
	case "get_issue":
		return fmt.Sprintf("Retrieved details for issue %s", stringArg(args, "issue_key"))
	case "get_issue_comments":
		return fmt.Sprintf("Retrieved comments for %s%s", stringArg(args, "issue_key"), pageSuffix(args))
	case "get_issue_changelog":
		return fmt.Sprintf("Retrieved changelog for %s%s", stringArg(args, "issue_key"), pageSuffix(args))
	case "get_issue_transitions":
		return fmt.Sprintf("Available status transitions for %s", stringArg(args, "issue_key"))
	case "list_projects":
		return "Listed projects" + criteria(args, "query")
	case "list_boards":
		return "Retrieved agile boards" + criteria(args, "project_key_or_id", "board_type", "name")
	case "list_sprints":
		if state := stringArg(args, "state"); state != "" {
			return fmt.Sprintf("Retrieved %s sprints from board %s", state, stringArg(args, "board_id"))
		}
		return fmt.Sprintf("Retrieved sprints from board %s", stringArg(args, "board_id"))
	case "get_sprint_issues":
		return fmt.Sprintf("Retrieved issues from sprint %s%s", stringArg(args, "sprint_id"), pageSuffix(args))
	case "search_users":
		return fmt.Sprintf("Searched users matching '%s'", stringArg(args, "query"))
	default:
		return "Operation completed"
	}
}

// stringArg renders an argument for display; JSON numbers print without a
// fractional part.
func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func pageSuffix(args map[string]any) string {
	start := stringArg(args, "start_at")
	limit := stringArg(args, "max_results")
	if start == "" && limit == "" {
		return ""
	}
	if start == "" {
		start = "0"
	}
	if limit == "" {
		return fmt.Sprintf(" (from %s)", start)
	}
	return fmt.Sprintf(" (from %s, up to %s)", start, limit)
}

func criteria(args map[string]any, keys ...string) string {
	var parts []string
	for _, k := range keys {
		if v := stringArg(args, k); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
