package mcpserver

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolResultText returns the first content item of a tool result as text
func ToolResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		jsonBytes, _ := json.MarshalIndent(content, "", "  ")
		return string(jsonBytes)
	}
	return ""
}
